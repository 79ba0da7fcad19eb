package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/asset_ledger_app/internal/models"
	"github.com/SscSPs/asset_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/asset_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, asset_id, transaction_type, transaction_date,
	amount, quantity_change, notes, metadata,
	asset_name, asset_type, acquisition_value, current_value, quantity,
	unit_of_measure, custom_properties, asset_description,
	created_at, created_by, last_updated_at, last_updated_by`

// Ordering is crucial and must be stable; id breaks ties between entries
// created in the same instant.
const transactionOrder = `ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

const defaultPageSize = 20

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AssetID,
		&m.TransactionType,
		&m.TransactionDate,
		&m.Amount,
		&m.QuantityChange,
		&m.Notes,
		&m.Metadata,
		&m.AssetName,
		&m.AssetType,
		&m.AcquisitionValue,
		&m.CurrentValue,
		&m.Quantity,
		&m.UnitOfMeasure,
		&m.CustomProperties,
		&m.AssetDescription,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return out, nil
}

func findTransaction(ctx context.Context, q querier, transactionID string, lock bool) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	m, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// SaveTransactionInTx inserts a ledger entry within a transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`

	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AssetID,
		m.TransactionType,
		m.TransactionDate,
		m.Amount,
		m.QuantityChange,
		m.Notes,
		m.Metadata,
		m.AssetName,
		m.AssetType,
		m.AcquisitionValue,
		m.CurrentValue,
		m.Quantity,
		m.UnitOfMeasure,
		m.CustomProperties,
		m.AssetDescription,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "save transaction", m.TransactionID)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, transactionID, false)
}

// FindTransactionByIDForUpdate retrieves a ledger entry and locks the row for update.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, tx, transactionID, true)
}

// ListTransactionsByUser retrieves a paginated list of a user's entries using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid next_token", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		query += ` AND (transaction_date, created_at, transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}
	query += " " + transactionOrder + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	results, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(results) > limit {
		// The token points to the last item included in this page.
		last := results[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TransactionDate, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// ListTransactionsByAsset retrieves every entry of one asset, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAsset(ctx context.Context, assetID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE asset_id = $1 ` + transactionOrder + `;`
	rows, err := r.Pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for asset "+assetID, err)
	}
	results, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// ListTransactionsByAssetIDs retrieves every entry of the given assets, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAssetIDs(ctx context.Context, assetIDs []string) ([]domain.Transaction, error) {
	if len(assetIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE asset_id = ANY($1) ` + transactionOrder + `;`
	rows, err := r.Pool.Query(ctx, query, assetIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions by asset IDs", err)
	}
	results, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// UpdateTransaction rewrites the editable fields of an entry.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET transaction_date = $2, amount = $3, quantity_change = $4, notes = $5, metadata = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.Amount,
		m.QuantityChange,
		m.Notes,
		m.Metadata,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "update transaction", m.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

// DeleteTransactionInTx removes a single entry within a transaction.
func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// DeleteTransactionsByAssetInTx removes every entry of an asset within a transaction.
func (r *PgxTransactionRepository) DeleteTransactionsByAssetInTx(ctx context.Context, tx pgx.Tx, assetID string) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE asset_id = $1;`, assetID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete transactions of asset "+assetID, err)
	}
	return cmdTag.RowsAffected(), nil
}
