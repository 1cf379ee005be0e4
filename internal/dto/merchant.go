package dto

import (
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MerchantBalanceResponse is the live balance of a merchant.
type MerchantBalanceResponse struct {
	MerchantID     int64           `json:"merchantID"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

func ToMerchantBalanceResponse(m *domain.Merchant) MerchantBalanceResponse {
	return MerchantBalanceResponse{
		MerchantID:     m.MerchantID,
		Name:           m.Name,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
	}
}
