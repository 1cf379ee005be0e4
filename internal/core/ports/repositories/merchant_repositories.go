package repositories

import (
	"context"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MerchantReader defines read operations for merchant data
type MerchantReader interface {
	// FindMerchantByID retrieves a merchant with its live balance.
	FindMerchantByID(ctx context.Context, merchantID int64) (*domain.Merchant, error)

	// GetBalance returns the live balance of a merchant.
	GetBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error)
}

// MerchantBalanceStore owns current_balance. Credits are atomic additions;
// nothing overwrites the balance.
type MerchantBalanceStore interface {
	MerchantReader

	// CreditBalance adds amount to the live balance and returns the new balance.
	// Non-positive amounts are rejected with apperrors.ErrValidation.
	CreditBalance(ctx context.Context, merchantID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

// MerchantWriter registers merchants. Used by seeding only.
type MerchantWriter interface {
	SaveMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error)
}
