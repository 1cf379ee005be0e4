package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	UnitOfWork    FundingUnitOfWork
	FundingRepo   FundingRequestRepository
	MerchantRepo  MerchantBalanceStore
	MerchantAdmin MerchantWriter
	QueryRepo     FundingQueryReader
}
