package readmodel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vas_funding_ledger/internal/models"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/mapping"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/pagination"
	"github.com/lib/pq"
)

const selectFunding = `SELECT funding_ref, merchant_id, amount, balance_before, balance_after, description, source,
	is_approved, is_credited, is_active, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by, version
	FROM funding_requests`

// statusExpr derives the status from the boolean triplet, matching mapping.ToFundingStatus.
const statusExpr = `(CASE WHEN NOT is_active THEN 'REJECTED' WHEN is_approved THEN 'APPROVED' ELSE 'PENDING' END)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FundingQueryRepository serves listing and audit reads over database/sql.
// It may point at a replica, so it never takes part in a unit of work.
type FundingQueryRepository struct {
	db *sql.DB
}

// NewFundingQueryRepository creates the read model repository.
func NewFundingQueryRepository(db *sql.DB) *FundingQueryRepository {
	return &FundingQueryRepository{db: db}
}

var _ portsrepo.FundingQueryReader = (*FundingQueryRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFunding(row rowScanner) (models.FundingRequest, error) {
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

func (r *FundingQueryRepository) FindFundingByRef(ctx context.Context, fundingRef string) (*domain.FundingRequest, error) {
	m, err := scanFunding(r.db.QueryRowContext(ctx, selectFunding+` WHERE funding_ref = $1`, fundingRef))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("funding request %s not found", fundingRef))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read funding request %s", fundingRef), err)
	}
	d := mapping.ToDomainFunding(m)
	return &d, nil
}

func (r *FundingQueryRepository) ListByMerchant(ctx context.Context, merchantID int64, limit int, nextToken *string) ([]domain.FundingRequest, *string, error) {
	return r.Search(ctx, domain.FundingFilter{MerchantID: &merchantID, Limit: limit, NextToken: nextToken})
}

// Search builds the WHERE clause from the filter and fetches one extra row to
// decide whether another page exists.
func (r *FundingQueryRepository) Search(ctx context.Context, filter domain.FundingFilter) ([]domain.FundingRequest, *string, error) {
	limit := pagination.ClampLimit(filter.Limit)
	fetchLimit := limit + 1

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.MerchantID != nil {
		conditions = append(conditions, "merchant_id = "+arg(*filter.MerchantID))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, statusExpr+" = ANY("+arg(pq.Array(statuses))+")")
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		p := arg("%" + likeEscaper.Replace(q) + "%")
		conditions = append(conditions, fmt.Sprintf("(funding_ref ILIKE %[1]s OR description ILIKE %[1]s OR source ILIKE %[1]s)", p))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastRef, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid next_token", err)
		}
		conditions = append(conditions, fmt.Sprintf("(created_at, funding_ref) < (%s, %s)", arg(lastCreatedAt), arg(lastRef)))
	}

	query := selectFunding
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, funding_ref DESC LIMIT " + arg(fetchLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to list funding requests", err)
	}
	defer rows.Close()

	ms := make([]models.FundingRequest, 0, fetchLimit)
	for rows.Next() {
		m, err := scanFunding(rows)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan funding request", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("failed iterating funding requests", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.FundingRef)
		next = &token
	}

	return mapping.ToDomainFundingSlice(ms), next, nil
}
