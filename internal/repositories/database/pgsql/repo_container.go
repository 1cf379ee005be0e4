package pgsql

import (
	portsrepo "github.com/SscSPs/vas_funding_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres write side. The query repository is
// supplied by the caller since it runs on its own connection.
func NewRepositoryProvider(dbPool *pgxpool.Pool, queryRepo portsrepo.FundingQueryReader) portsrepo.RepositoryProvider {
	merchantRepo := newPgxMerchantRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UnitOfWork:    newPgxUnitOfWork(dbPool),
		FundingRepo:   newPgxFundingRepository(dbPool, false),
		MerchantRepo:  merchantRepo,
		MerchantAdmin: merchantRepo,
		QueryRepo:     queryRepo,
	}
}
