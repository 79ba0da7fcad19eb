package pgsql

import (
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssetRepo:       newPgxAssetRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
	}
}
