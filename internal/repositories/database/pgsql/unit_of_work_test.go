package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnitOfWork(tx *fakeTx) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: &fakeStarter{tx: tx}}}
}

// approveInTx runs the same statements the workflow issues for an approval.
func approveInTx(ctx context.Context, repos portsrepo.TxRepositories) error {
	current, err := repos.Funding.GetFundingByRef(ctx, fundingRef)
	if err != nil {
		return err
	}
	ok, err := repos.Funding.CompareAndSetApproved(ctx, fundingRef, current.Version, "op-2", casAt)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrConcurrentModification
	}
	_, err = repos.Merchants.CreditBalance(ctx, current.MerchantID, current.Amount)
	return err
}

func TestPgxUnitOfWork_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	db := &fakeQuerier{
		tag: pgconn.NewCommandTag("UPDATE 1"),
		rows: []fakeRow{
			{values: fundingRowValues(false, false, true, 1)},
			{values: []any{decimal.NewFromInt(1500)}},
		},
	}
	tx := &fakeTx{db: db}

	err := newTestUnitOfWork(tx).WithinTx(ctx, approveInTx)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
	require.Len(t, db.calls, 3)
	assert.True(t, strings.HasSuffix(db.calls[0].sql, "FOR UPDATE"), "reads inside the unit of work lock the row")
	assert.Contains(t, db.calls[1].sql, "version = $2")
	assert.Contains(t, db.calls[2].sql, "COALESCE(current_balance, 0) + $2")
}

func TestPgxUnitOfWork_RollsBackWhenCreditFailsAfterCAS(t *testing.T) {
	ctx := context.Background()
	db := &fakeQuerier{
		tag: pgconn.NewCommandTag("UPDATE 1"),
		rows: []fakeRow{
			{values: fundingRowValues(false, false, true, 1)},
			{err: errors.New("connection reset by peer")},
		},
	}
	tx := &fakeTx{db: db}

	err := newTestUnitOfWork(tx).WithinTx(ctx, approveInTx)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	require.Len(t, db.calls, 3, "the CAS ran before the credit failed")
}

func TestPgxUnitOfWork_LostCASRollsBack(t *testing.T) {
	ctx := context.Background()
	db := &fakeQuerier{
		tag:  pgconn.NewCommandTag("UPDATE 0"),
		rows: []fakeRow{{values: fundingRowValues(false, false, true, 1)}},
	}
	tx := &fakeTx{db: db}

	err := newTestUnitOfWork(tx).WithinTx(ctx, approveInTx)

	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Len(t, db.calls, 2, "no credit after a lost CAS")
}

func TestPgxUnitOfWork_CommitFailure(t *testing.T) {
	tx := &fakeTx{db: &fakeQuerier{}, commitErr: &pgconn.PgError{Code: pgSerializationFailure}}

	err := newTestUnitOfWork(tx).WithinTx(context.Background(), func(context.Context, portsrepo.TxRepositories) error {
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestPgxUnitOfWork_PanicRollsBackAndRepanics(t *testing.T) {
	tx := &fakeTx{db: &fakeQuerier{}}
	uow := newTestUnitOfWork(tx)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(context.Context, portsrepo.TxRepositories) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestPgxUnitOfWork_BeginFailure(t *testing.T) {
	uow := &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: &fakeStarter{err: errors.New("pool closed")}}}
	called := false

	err := uow.WithinTx(context.Background(), func(context.Context, portsrepo.TxRepositories) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.False(t, called)
}
