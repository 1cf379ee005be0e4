package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vas_funding_ledger/internal/models"
	"github.com/SscSPs/vas_funding_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxMerchantRepository struct {
	db querier
}

func newPgxMerchantRepository(db querier) *PgxMerchantRepository {
	return &PgxMerchantRepository{db: db}
}

var (
	_ portsrepo.MerchantBalanceStore = (*PgxMerchantRepository)(nil)
	_ portsrepo.MerchantWriter       = (*PgxMerchantRepository)(nil)
)

func merchantNotFound(merchantID int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("merchant %d not found", merchantID))
}

// FindMerchantByID retrieves a merchant and its live balance.
func (r *PgxMerchantRepository) FindMerchantByID(ctx context.Context, merchantID int64) (*domain.Merchant, error) {
	query := `
		SELECT merchant_id, name, COALESCE(current_balance, 0), is_active, created_at, updated_at
		FROM merchants
		WHERE merchant_id = $1;
	`
	var m models.Merchant
	err := r.db.QueryRow(ctx, query, merchantID).Scan(
		&m.MerchantID,
		&m.Name,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, merchantNotFound(merchantID)
		}
		return nil, mapPgError(err, fmt.Sprintf("failed to find merchant %d", merchantID))
	}

	d := mapping.ToDomainMerchant(m)
	return &d, nil
}

// GetBalance returns the live balance.
func (r *PgxMerchantRepository) GetBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(current_balance, 0) FROM merchants WHERE merchant_id = $1;`,
		merchantID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, merchantNotFound(merchantID)
		}
		return decimal.Zero, mapPgError(err, fmt.Sprintf("failed to read balance of merchant %d", merchantID))
	}
	return balance, nil
}

// CreditBalance adds amount in a single statement so concurrent credits and
// external debits never overwrite each other.
func (r *PgxMerchantRepository) CreditBalance(ctx context.Context, merchantID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("credit amount must be positive, got %s", amount), nil)
	}

	query := `
		UPDATE merchants
		SET current_balance = COALESCE(current_balance, 0) + $2, updated_at = NOW()
		WHERE merchant_id = $1
		RETURNING current_balance;
	`
	var newBalance decimal.Decimal
	if err := r.db.QueryRow(ctx, query, merchantID, amount).Scan(&newBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, merchantNotFound(merchantID)
		}
		return decimal.Zero, mapPgError(err, fmt.Sprintf("failed to credit merchant %d", merchantID))
	}
	return newBalance, nil
}

// SaveMerchant registers a merchant and returns it with its assigned id.
func (r *PgxMerchantRepository) SaveMerchant(ctx context.Context, merchant domain.Merchant) (*domain.Merchant, error) {
	m := mapping.ToModelMerchant(merchant)
	query := `
		INSERT INTO merchants (name, current_balance, is_active)
		VALUES ($1, $2, $3)
		RETURNING merchant_id, created_at, updated_at;
	`
	if err := r.db.QueryRow(ctx, query, m.Name, m.CurrentBalance, m.IsActive).Scan(&m.MerchantID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, mapPgError(err, fmt.Sprintf("failed to save merchant %q", m.Name))
	}
	d := mapping.ToDomainMerchant(m)
	return &d, nil
}
