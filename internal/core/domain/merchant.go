package domain

import (
	"github.com/shopspring/decimal"
)

// Merchant is the slice of the merchant record the funding ledger reads.
// Merchant CRUD lives outside this service; only CurrentBalance is ever written here,
// and only by an additive credit.
type Merchant struct {
	MerchantID     int64           `json:"merchantID"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}
