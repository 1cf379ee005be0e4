package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingRequest is the persisted row of funding_requests.
// State lives in the legacy boolean triplet; see mapping for the status translation.
type FundingRequest struct {
	FundingRef    string          `db:"funding_ref"`
	MerchantID    int64           `db:"merchant_id"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	Source        string          `db:"source"`
	IsApproved    bool            `db:"is_approved"`
	IsCredited    bool            `db:"is_credited"`
	IsActive      bool            `db:"is_active"`
	ApprovedBy    *string         `db:"approved_by"`
	ApprovedAt    *time.Time      `db:"approved_at"`
	AuditFields
}
