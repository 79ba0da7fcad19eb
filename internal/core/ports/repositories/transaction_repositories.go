package repositories

import (
	"context"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger entry by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a user's entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAsset retrieves every entry of one asset, newest first.
	ListTransactionsByAsset(ctx context.Context, assetID string) ([]domain.Transaction, error)

	// ListTransactionsByAssetIDs retrieves every entry of the given assets, newest first.
	ListTransactionsByAssetIDs(ctx context.Context, assetIDs []string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// UpdateTransaction rewrites the editable fields of an entry.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionTransactionSupport defines ledger operations that run inside a caller-owned transaction
type TransactionTransactionSupport interface {
	// SaveTransactionInTx inserts a ledger entry within the given transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// FindTransactionByIDForUpdate selects an entry and locks its row.
	FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// DeleteTransactionInTx removes a single entry.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error

	// DeleteTransactionsByAssetInTx removes every entry of an asset and returns how many were removed.
	DeleteTransactionsByAssetInTx(ctx context.Context, tx pgx.Tx, assetID string) (int64, error)
}

// TransactionRepositoryFacade combines all ledger-entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTransactionSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
