package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// FundingStatus is the lifecycle state of a funding request.
type FundingStatus string

const (
	FundingPending  FundingStatus = "PENDING"
	FundingApproved FundingStatus = "APPROVED"
	FundingRejected FundingStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s FundingStatus) Valid() bool {
	switch s {
	case FundingPending, FundingApproved, FundingRejected:
		return true
	}
	return false
}

// FundingRequest is an operator-initiated proposal to credit a merchant's balance.
// BalanceBefore and BalanceAfter are captured at creation for display only; approval
// always credits the live balance.
type FundingRequest struct {
	FundingRef    string          `json:"fundingRef"`
	MerchantID    int64           `json:"merchantID"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	Source        string          `json:"source"`
	Status        FundingStatus   `json:"status"`
	IsCredited    bool            `json:"isCredited"`
	ApprovedBy    *string         `json:"approvedBy"` // Approver or rejecter
	ApprovedAt    *time.Time      `json:"approvedAt"`
	AuditFields
}

// NewFundingRequest builds a pending request with its balance snapshot.
func NewFundingRequest(ref string, merchantID int64, amount, currentBalance decimal.Decimal, description, source, actor string, now time.Time) FundingRequest {
	return FundingRequest{
		FundingRef:    ref,
		MerchantID:    merchantID,
		Amount:        amount,
		BalanceBefore: currentBalance,
		BalanceAfter:  currentBalance.Add(amount),
		Description:   description,
		Source:        source,
		Status:        FundingPending,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
			Version:       1,
		},
	}
}

func (f FundingRequest) IsPending() bool  { return f.Status == FundingPending }
func (f FundingRequest) IsApproved() bool { return f.Status == FundingApproved }
func (f FundingRequest) IsRejected() bool { return f.Status == FundingRejected }

// IsActive is false only for rejected requests.
func (f FundingRequest) IsActive() bool { return f.Status != FundingRejected }

// AmountScale is the number of decimal places the ledger stores (NUMERIC(20,4)).
const AmountScale = 4

// MaxAmount is the smallest amount that no longer fits NUMERIC(20,4).
var MaxAmount = decimal.New(1, 20-AmountScale)

// ValidateAmount checks that a funding amount is strictly positive, carries at most
// AmountScale decimal places and fits the stored precision.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError(fmt.Sprintf("amount must be positive, got %s", amount.String()), nil)
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return apperrors.NewValidationError(fmt.Sprintf("amount must have at most %d decimal places, got %s", AmountScale, amount.String()), nil)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return apperrors.NewValidationError(fmt.Sprintf("amount must be less than %s, got %s", MaxAmount.String(), amount.String()), nil)
	}
	return nil
}

// CanApprove returns the error an approval attempt must fail with, or nil.
func (f FundingRequest) CanApprove() error {
	switch f.Status {
	case FundingApproved:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, f.FundingRef)
	case FundingRejected:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyRejected, f.FundingRef)
	}
	if f.IsCredited {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCredited, f.FundingRef)
	}
	return nil
}

// CanReject returns the error a rejection attempt must fail with, or nil.
// A legacy row that was credited without being approved cannot be rejected either.
func (f FundingRequest) CanReject() error {
	switch f.Status {
	case FundingApproved:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, f.FundingRef)
	case FundingRejected:
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyRejected, f.FundingRef)
	}
	if f.IsCredited {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCredited, f.FundingRef)
	}
	return nil
}

// CanAmend returns the error an amount amendment must fail with, or nil.
func (f FundingRequest) CanAmend() error {
	if f.IsApproved() {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyApproved, f.FundingRef)
	}
	if f.IsCredited {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyCredited, f.FundingRef)
	}
	if f.IsRejected() {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyRejected, f.FundingRef)
	}
	return nil
}

// WithAmount returns a copy carrying newAmount. BalanceBefore is never recomputed.
func (f FundingRequest) WithAmount(newAmount decimal.Decimal) FundingRequest {
	f.Amount = newAmount
	f.BalanceAfter = f.BalanceBefore.Add(newAmount)
	return f
}

// Approved returns the approved and credited successor of f.
func (f FundingRequest) Approved(actor string, at time.Time) FundingRequest {
	f.Status = FundingApproved
	f.IsCredited = true
	f.ApprovedBy = &actor
	f.ApprovedAt = &at
	return f.touched(actor, at)
}

// Rejected returns the rejected successor of f. The rejecter is recorded in ApprovedBy.
func (f FundingRequest) Rejected(actor string, at time.Time) FundingRequest {
	f.Status = FundingRejected
	f.ApprovedBy = &actor
	f.ApprovedAt = &at
	return f.touched(actor, at)
}

// Amended returns the successor of f carrying newAmount.
func (f FundingRequest) Amended(newAmount decimal.Decimal, actor string, at time.Time) FundingRequest {
	return f.WithAmount(newAmount).touched(actor, at)
}

func (f FundingRequest) touched(actor string, at time.Time) FundingRequest {
	f.LastUpdatedBy = actor
	f.LastUpdatedAt = at
	f.Version++
	return f
}

// FundingFilter selects funding requests for the query side.
type FundingFilter struct {
	MerchantID *int64
	Statuses   []FundingStatus
	Search     string
	Limit      int
	NextToken  *string
}
