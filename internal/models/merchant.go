package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant is the persisted row of merchants.
type Merchant struct {
	MerchantID     int64           `db:"merchant_id"`
	Name           string          `db:"name"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
