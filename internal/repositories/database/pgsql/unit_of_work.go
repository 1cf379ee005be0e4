package pgsql

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs funding writes and the balance credit in one pgx transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundingUnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTx commits only when fn returns nil. An error or a panic from fn rolls back.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) (err error) {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(ctx, tx)
			panic(p)
		}
		if err == nil {
			return
		}
		if rbErr := u.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback funding transaction", slog.String("error", rbErr.Error()))
		}
	}()

	repos := portsrepo.TxRepositories{
		Funding:   newPgxFundingRepository(tx, true),
		Merchants: newPgxMerchantRepository(tx),
	}
	if err = fn(ctx, repos); err != nil {
		return err
	}
	return u.Commit(ctx, tx)
}
