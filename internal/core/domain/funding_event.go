package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingEventType names a committed funding state change.
type FundingEventType string

const (
	FundingCreatedEvent  FundingEventType = "FUNDING_CREATED"
	FundingApprovedEvent FundingEventType = "FUNDING_APPROVED"
	FundingRejectedEvent FundingEventType = "FUNDING_REJECTED"
	FundingAmendedEvent  FundingEventType = "FUNDING_AMENDED"
)

// FundingEvent is emitted after a funding change has committed.
type FundingEvent struct {
	Type            FundingEventType `json:"type"`
	FundingRef      string           `json:"funding_ref"`
	MerchantID      int64            `json:"merchant_id"`
	Amount          decimal.Decimal  `json:"amount"`
	MerchantBalance *decimal.Decimal `json:"merchant_balance,omitempty"` // Set on approval
	Actor           string           `json:"actor"`
	OccurredAt      time.Time        `json:"occurred_at"`
}
