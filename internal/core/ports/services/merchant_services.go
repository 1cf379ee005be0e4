package services

import (
	"context"

	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
)

// MerchantSvc exposes merchant reads needed by operators
type MerchantSvc interface {
	// GetMerchantBalance returns the merchant with its live balance.
	GetMerchantBalance(ctx context.Context, merchantID int64) (*domain.Merchant, error)
}
