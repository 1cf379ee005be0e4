package domain

import (
	"testing"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newPending() FundingRequest {
	return NewFundingRequest("ref-1", 9, decimal.NewFromInt(500), decimal.NewFromInt(1000), "top up", "bank", "op-1", time.Now())
}

func TestNewFundingRequest_Snapshot(t *testing.T) {
	f := newPending()

	assert.Equal(t, FundingPending, f.Status)
	assert.True(t, f.IsActive())
	assert.False(t, f.IsCredited)
	assert.True(t, f.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, f.BalanceAfter.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, int64(1), f.Version)
	assert.Equal(t, "op-1", f.CreatedBy)
}

func TestFundingRequest_Guards(t *testing.T) {
	pending := newPending()

	approved := newPending()
	approved.Status = FundingApproved
	approved.IsCredited = true

	rejected := newPending()
	rejected.Status = FundingRejected

	legacy := newPending()
	legacy.IsCredited = true

	tests := []struct {
		name       string
		f          FundingRequest
		approveErr error
		rejectErr  error
		amendErr   error
	}{
		{"pending", pending, nil, nil, nil},
		{"approved", approved, apperrors.ErrAlreadyApproved, apperrors.ErrAlreadyApproved, apperrors.ErrAlreadyApproved},
		{"rejected", rejected, apperrors.ErrAlreadyRejected, apperrors.ErrAlreadyRejected, apperrors.ErrAlreadyRejected},
		{"credited legacy row", legacy, apperrors.ErrAlreadyCredited, apperrors.ErrAlreadyCredited, apperrors.ErrAlreadyCredited},
	}

	check := func(t *testing.T, got, want error) {
		if want == nil {
			assert.NoError(t, got)
			return
		}
		assert.ErrorIs(t, got, want)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, tt.f.CanApprove(), tt.approveErr)
			check(t, tt.f.CanReject(), tt.rejectErr)
			check(t, tt.f.CanAmend(), tt.amendErr)
		})
	}
}

func TestFundingRequest_WithAmountKeepsBalanceBefore(t *testing.T) {
	f := newPending().WithAmount(decimal.RequireFromString("250.75"))

	assert.True(t, f.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, f.BalanceAfter.Equal(decimal.RequireFromString("1250.75")))
	assert.True(t, f.BalanceAfter.Equal(f.BalanceBefore.Add(f.Amount)))
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"cent", "0.01", false},
		{"four decimal places", "10.1234", false},
		{"trailing zeros beyond scale", "10.12000", false},
		{"largest storable", "9999999999999999.9999", false},
		{"zero", "0", true},
		{"negative", "-3", true},
		{"rounds to zero at scale", "0.00001", true},
		{"five decimal places", "10.12345", true},
		{"out of range", "10000000000000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFundingRequest_Transitions(t *testing.T) {
	at := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	f := newPending()

	approved := f.Approved("op-2", at)
	assert.Equal(t, FundingApproved, approved.Status)
	assert.True(t, approved.IsCredited)
	assert.Equal(t, "op-2", *approved.ApprovedBy)
	assert.Equal(t, at, *approved.ApprovedAt)
	assert.Equal(t, f.Version+1, approved.Version)
	assert.Equal(t, FundingPending, f.Status, "receiver is not modified")

	rejected := f.Rejected("op-3", at)
	assert.Equal(t, FundingRejected, rejected.Status)
	assert.False(t, rejected.IsActive())
	assert.False(t, rejected.IsCredited)
	assert.Equal(t, "op-3", *rejected.ApprovedBy)

	amended := f.Amended(decimal.NewFromInt(700), "op-4", at)
	assert.True(t, amended.BalanceAfter.Equal(decimal.NewFromInt(1700)))
	assert.Equal(t, "op-4", amended.LastUpdatedBy)
	assert.Equal(t, "op-1", amended.CreatedBy)
	assert.Equal(t, f.Version+1, amended.Version)
}
