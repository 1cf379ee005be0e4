package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vas_funding_ledger/internal/models"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const fundingColumns = `funding_ref, merchant_id, amount, balance_before, balance_after, description, source,
	is_approved, is_credited, is_active, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by, version`

// A row is still pending when none of the terminal flags are set.
const pendingPredicate = `is_approved = FALSE AND is_credited = FALSE AND is_active = TRUE`

type PgxFundingRepository struct {
	db querier
	// lockRows makes reads take a row lock; only meaningful inside a transaction.
	lockRows bool
}

func newPgxFundingRepository(db querier, lockRows bool) *PgxFundingRepository {
	return &PgxFundingRepository{db: db, lockRows: lockRows}
}

var _ portsrepo.FundingRequestRepository = (*PgxFundingRepository)(nil)

func scanFunding(row pgx.Row) (models.FundingRequest, error) {
	var m models.FundingRequest
	err := row.Scan(
		&m.FundingRef,
		&m.MerchantID,
		&m.Amount,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.Description,
		&m.Source,
		&m.IsApproved,
		&m.IsCredited,
		&m.IsActive,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

// SaveFunding inserts a new pending request.
func (r *PgxFundingRepository) SaveFunding(ctx context.Context, funding domain.FundingRequest) error {
	m := mapping.ToModelFunding(funding)

	query := `
		INSERT INTO funding_requests (` + fundingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		m.FundingRef,
		m.MerchantID,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Description,
		m.Source,
		m.IsApproved,
		m.IsCredited,
		m.IsActive,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save funding request %s", m.FundingRef))
	}
	return nil
}

// GetFundingByRef loads a request, locking the row when bound to a transaction.
func (r *PgxFundingRepository) GetFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_requests WHERE funding_ref = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}

	m, err := scanFunding(r.db.QueryRow(ctx, query, fundingRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("funding request %s not found", fundingRef))
		}
		return nil, mapPgError(err, fmt.Sprintf("failed to load funding request %s", fundingRef))
	}

	d := mapping.ToDomainFunding(m)
	return &d, nil
}

// CompareAndSetApproved sets the approved and credited flags together.
func (r *PgxFundingRepository) CompareAndSetApproved(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	query := `
		UPDATE funding_requests
		SET is_approved = TRUE, is_credited = TRUE,
			approved_by = $3, approved_at = $4,
			last_updated_by = $3, last_updated_at = $4,
			version = version + 1
		WHERE funding_ref = $1 AND version = $2 AND ` + pendingPredicate + `;
	`
	return r.execCAS(ctx, "approve", fundingRef, query, fundingRef, expectedVersion, actor, at)
}

// CompareAndSetRejected deactivates a pending request.
func (r *PgxFundingRepository) CompareAndSetRejected(ctx context.Context, fundingRef string, expectedVersion int64, actor string, at time.Time) (bool, error) {
	query := `
		UPDATE funding_requests
		SET is_active = FALSE,
			approved_by = $3, approved_at = $4,
			last_updated_by = $3, last_updated_at = $4,
			version = version + 1
		WHERE funding_ref = $1 AND version = $2 AND ` + pendingPredicate + `;
	`
	return r.execCAS(ctx, "reject", fundingRef, query, fundingRef, expectedVersion, actor, at)
}

// UpdateAmount rewrites amount and balance_after. balance_before is never touched.
func (r *PgxFundingRepository) UpdateAmount(ctx context.Context, fundingRef string, expectedVersion int64, newAmount, newBalanceAfter decimal.Decimal, actor string, at time.Time) (bool, error) {
	query := `
		UPDATE funding_requests
		SET amount = $3, balance_after = $4,
			last_updated_by = $5, last_updated_at = $6,
			version = version + 1
		WHERE funding_ref = $1 AND version = $2 AND ` + pendingPredicate + `;
	`
	return r.execCAS(ctx, "amend", fundingRef, query, fundingRef, expectedVersion, newAmount, newBalanceAfter, actor, at)
}

func (r *PgxFundingRepository) execCAS(ctx context.Context, op, fundingRef, query string, args ...any) (bool, error) {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, mapPgError(err, fmt.Sprintf("failed to %s funding request %s", op, fundingRef))
	}
	return tag.RowsAffected() == 1, nil
}
