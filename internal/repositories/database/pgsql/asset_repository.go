package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/asset_ledger_app/internal/models"
	"github.com/SscSPs/asset_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assetColumns = `asset_id, user_id, name, asset_type, description, purchase_date,
	initial_value, current_value, quantity, unit_of_measure, liquid_assets, is_selected,
	time_horizon, asset_purpose, metadata, sold_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for asset data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryWithTx {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepositoryWithTx
var _ portsrepo.AssetRepositoryWithTx = (*PgxAssetRepository)(nil)

func scanAsset(row rowScanner) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.UserID,
		&m.Name,
		&m.AssetType,
		&m.Description,
		&m.PurchaseDate,
		&m.InitialValue,
		&m.CurrentValue,
		&m.Quantity,
		&m.UnitOfMeasure,
		&m.LiquidAssets,
		&m.IsSelected,
		&m.TimeHorizon,
		&m.AssetPurpose,
		&m.Metadata,
		&m.SoldAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertAsset(ctx context.Context, q querier, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	query := `INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`

	_, err := q.Exec(ctx, query,
		m.AssetID,
		m.UserID,
		m.Name,
		m.AssetType,
		m.Description,
		m.PurchaseDate,
		m.InitialValue,
		m.CurrentValue,
		m.Quantity,
		m.UnitOfMeasure,
		m.LiquidAssets,
		m.IsSelected,
		m.TimeHorizon,
		m.AssetPurpose,
		m.Metadata,
		m.SoldAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "save asset", m.AssetID)
	}
	return nil
}

func updateAsset(ctx context.Context, q querier, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	query := `
		UPDATE assets
		SET name = $2, asset_type = $3, description = $4, purchase_date = $5,
		    initial_value = $6, current_value = $7, quantity = $8, unit_of_measure = $9,
		    liquid_assets = $10, is_selected = $11, time_horizon = $12, asset_purpose = $13,
		    metadata = $14, sold_at = $15, last_updated_at = $16, last_updated_by = $17
		WHERE asset_id = $1;
	`
	cmdTag, err := q.Exec(ctx, query,
		m.AssetID,
		m.Name,
		m.AssetType,
		m.Description,
		m.PurchaseDate,
		m.InitialValue,
		m.CurrentValue,
		m.Quantity,
		m.UnitOfMeasure,
		m.LiquidAssets,
		m.IsSelected,
		m.TimeHorizon,
		m.AssetPurpose,
		m.Metadata,
		m.SoldAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "update asset", m.AssetID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, m.AssetID)
	}
	return nil
}

func findAsset(ctx context.Context, q querier, assetID string, lock bool) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	m, err := scanAsset(q.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset by ID "+assetID, err)
	}
	asset := mapping.ToDomainAsset(m)
	return &asset, nil
}

// SaveAsset inserts a new asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	return insertAsset(ctx, r.Pool, asset)
}

// SaveAssetInTx inserts a new asset within a transaction.
func (r *PgxAssetRepository) SaveAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	return insertAsset(ctx, tx, asset)
}

// UpdateAsset overwrites an existing asset.
func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	return updateAsset(ctx, r.Pool, asset)
}

// UpdateAssetInTx overwrites an existing asset within a transaction.
func (r *PgxAssetRepository) UpdateAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	return updateAsset(ctx, tx, asset)
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	return findAsset(ctx, r.Pool, assetID, false)
}

// FindAssetByIDForUpdate retrieves an asset and locks the row for update.
// Must be called within a transaction.
func (r *PgxAssetRepository) FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.Asset, error) {
	return findAsset(ctx, tx, assetID, true)
}

// ListAssetsByUser retrieves a user's assets ordered by creation time.
func (r *PgxAssetRepository) ListAssetsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE user_id = $1`
	if !includeInactive {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY created_at DESC, asset_id;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets for user "+userID, err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", err)
		}
		assets = append(assets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}

	return mapping.ToDomainAssetSlice(assets), nil
}

// DeleteAssetInTx removes an asset row within a transaction.
func (r *PgxAssetRepository) DeleteAssetInTx(ctx context.Context, tx pgx.Tx, assetID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete asset "+assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	return nil
}
