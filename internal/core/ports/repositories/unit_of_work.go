package repositories

import "context"

// TxRepositories are the repositories bound to a single unit of work.
type TxRepositories struct {
	Funding   FundingRequestRepository
	Merchants MerchantBalanceStore
}

// FundingUnitOfWork runs fn atomically. Any error returned by fn rolls back every
// write made through the TxRepositories handed to it.
type FundingUnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
