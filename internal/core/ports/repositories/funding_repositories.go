package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundingRequestReader defines read operations on the write side of funding requests
type FundingRequestReader interface {
	// GetFundingByRef loads a request by its funding_ref. Returns apperrors.ErrNotFound when absent.
	GetFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error)
}

// FundingRequestWriter defines the mutations allowed on funding requests.
// Every compare-and-set returns false, nil when the stored version or state no longer matches.
type FundingRequestWriter interface {
	// SaveFunding persists a new pending request.
	SaveFunding(ctx context.Context, funding domain.FundingRequest) error

	// CompareAndSetApproved flips a pending request to approved and credited.
	CompareAndSetApproved(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error)

	// CompareAndSetRejected flips a pending request to rejected.
	CompareAndSetRejected(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error)

	// UpdateAmount rewrites the amount and balance_after of a pending request.
	UpdateAmount(ctx context.Context, fundingRef string, expectedVersion int64, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) (bool, error)
}

// FundingRequestRepository combines funding request reads and writes
type FundingRequestRepository interface {
	FundingRequestReader
	FundingRequestWriter
}

// FundingQueryReader is the read model used by the audit and listing surface
type FundingQueryReader interface {
	// FindFundingByRef retrieves a single request for display.
	FindFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error)

	// ListByMerchant returns one merchant's requests, newest first.
	ListByMerchant(ctx context.Context, merchantID int64, limit int, nextToken *string) ([]domain.FundingRequest, *string, error)

	// Search applies the full filter, newest first.
	Search(ctx context.Context, filter domain.FundingFilter) ([]domain.FundingRequest, *string, error)
}
