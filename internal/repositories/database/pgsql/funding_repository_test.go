package pgsql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fundingRef = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

var casAt = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

func fundingRowValues(isApproved, isCredited, isActive bool, version int64) []any {
	var approvedBy *string
	var approvedAt *time.Time
	if isApproved || !isActive {
		actor := "op-2"
		approvedBy, approvedAt = &actor, &casAt
	}
	return []any{
		fundingRef,
		int64(7),
		decimal.NewFromInt(500),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(1500),
		"top up",
		"bank",
		isApproved,
		isCredited,
		isActive,
		approvedBy,
		approvedAt,
		casAt.Add(-time.Hour),
		"op-1",
		casAt,
		"op-2",
		version,
	}
}

func TestPgxFundingRepository_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromInt(700)
	balanceAfter := decimal.NewFromInt(1700)

	tests := []struct {
		name     string
		call     func(r *PgxFundingRepository) (bool, error)
		set      string
		wantArgs []any
	}{
		{
			name: "approve",
			call: func(r *PgxFundingRepository) (bool, error) {
				return r.CompareAndSetApproved(ctx, fundingRef, 3, "op-2", casAt)
			},
			set:      "SET is_approved = TRUE, is_credited = TRUE",
			wantArgs: []any{fundingRef, int64(3), "op-2", casAt},
		},
		{
			name: "reject",
			call: func(r *PgxFundingRepository) (bool, error) {
				return r.CompareAndSetRejected(ctx, fundingRef, 3, "op-2", casAt)
			},
			set:      "SET is_active = FALSE",
			wantArgs: []any{fundingRef, int64(3), "op-2", casAt},
		},
		{
			name: "amend",
			call: func(r *PgxFundingRepository) (bool, error) {
				return r.UpdateAmount(ctx, fundingRef, 3, amount, balanceAfter, "op-2", casAt)
			},
			set:      "SET amount = $3, balance_after = $4",
			wantArgs: []any{fundingRef, int64(3), amount, balanceAfter, "op-2", casAt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" matches one row", func(t *testing.T) {
			db := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}

			ok, err := tt.call(newPgxFundingRepository(db, false))

			require.NoError(t, err)
			assert.True(t, ok)
			require.Len(t, db.calls, 1)
			call := db.lastCall()
			assert.Contains(t, call.sql, tt.set)
			assert.Contains(t, call.sql, "WHERE funding_ref = $1 AND version = $2 AND "+pendingPredicate)
			assert.Contains(t, call.sql, "version = version + 1")
			assert.NotContains(t, call.sql, "balance_before =")
			assert.Equal(t, tt.wantArgs, call.args)
		})

		t.Run(tt.name+" lost to another writer", func(t *testing.T) {
			db := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}

			ok, err := tt.call(newPgxFundingRepository(db, false))

			require.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run(tt.name+" serialization failure is retryable", func(t *testing.T) {
			db := &fakeQuerier{execErr: &pgconn.PgError{Code: pgSerializationFailure}}

			ok, err := tt.call(newPgxFundingRepository(db, false))

			assert.False(t, ok)
			assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
		})
	}
}

func TestPgxFundingRepository_GetFundingByRef(t *testing.T) {
	ctx := context.Background()

	t.Run("row lock only inside a transaction", func(t *testing.T) {
		for _, lock := range []bool{false, true} {
			db := &fakeQuerier{rows: []fakeRow{{values: fundingRowValues(false, false, true, 1)}}}

			_, err := newPgxFundingRepository(db, lock).GetFundingByRef(ctx, fundingRef)

			require.NoError(t, err)
			call := db.lastCall()
			assert.Equal(t, lock, strings.HasSuffix(call.sql, "FOR UPDATE"), "lockRows=%v", lock)
			assert.Equal(t, []any{fundingRef}, call.args)
		}
	})

	t.Run("flags translate to status", func(t *testing.T) {
		tests := []struct {
			name     string
			values   []any
			status   domain.FundingStatus
			credited bool
		}{
			{"pending", fundingRowValues(false, false, true, 1), domain.FundingPending, false},
			{"approved", fundingRowValues(true, true, true, 2), domain.FundingApproved, true},
			{"rejected", fundingRowValues(false, false, false, 2), domain.FundingRejected, false},
			{"legacy credited", fundingRowValues(false, true, true, 4), domain.FundingPending, true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				db := &fakeQuerier{rows: []fakeRow{{values: tt.values}}}

				f, err := newPgxFundingRepository(db, false).GetFundingByRef(ctx, fundingRef)

				require.NoError(t, err)
				assert.Equal(t, tt.status, f.Status)
				assert.Equal(t, tt.credited, f.IsCredited)
				assert.Equal(t, tt.values[16], f.Version)
				assert.True(t, f.BalanceBefore.Equal(decimal.NewFromInt(1000)))
			})
		}
	})

	t.Run("missing row", func(t *testing.T) {
		db := &fakeQuerier{rows: []fakeRow{{err: pgx.ErrNoRows}}}

		_, err := newPgxFundingRepository(db, true).GetFundingByRef(ctx, fundingRef)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPgxFundingRepository_SaveFunding(t *testing.T) {
	ctx := context.Background()
	f := domain.NewFundingRequest(fundingRef, 7, decimal.NewFromInt(500), decimal.NewFromInt(1000), "top up", "bank", "op-1", casAt)

	t.Run("pending row carries the legacy flags", func(t *testing.T) {
		db := &fakeQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}

		require.NoError(t, newPgxFundingRepository(db, false).SaveFunding(ctx, f))

		call := db.lastCall()
		assert.Contains(t, call.sql, "INSERT INTO funding_requests")
		require.Len(t, call.args, 17)
		assert.Equal(t, fundingRef, call.args[0])
		assert.Equal(t, []any{false, false, true}, call.args[7:10])
		assert.Equal(t, int64(1), call.args[16])
	})

	tests := []struct {
		name string
		code string
		kind error
	}{
		{"duplicate ref", pgUniqueViolation, apperrors.ErrDuplicate},
		{"amount check", pgCheckViolation, apperrors.ErrValidation},
		{"amount out of range", pgNumericOutOfRange, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeQuerier{execErr: &pgconn.PgError{Code: tt.code}}

			err := newPgxFundingRepository(db, false).SaveFunding(ctx, f)

			assert.ErrorIs(t, err, tt.kind)
		})
	}
}
