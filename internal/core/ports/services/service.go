package services

// ServiceContainer holds instances of all the application services.
// Handlers and the CLI reach services only through it.
type ServiceContainer struct {
	Funding      FundingSvcFacade
	FundingQuery FundingQuerySvc
	Merchant     MerchantSvc
}
