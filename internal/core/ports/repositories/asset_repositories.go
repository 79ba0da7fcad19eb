package repositories

import (
	"context"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AssetReader defines read operations for asset data
type AssetReader interface {
	// FindAssetByID retrieves a specific asset by its unique identifier.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)

	// ListAssetsByUser retrieves a user's assets. Sold assets (quantity <= 0)
	// are only returned when includeInactive is set.
	ListAssetsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data
type AssetWriter interface {
	// SaveAsset persists a new asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset overwrites every mutable field of an existing asset.
	UpdateAsset(ctx context.Context, asset domain.Asset) error
}

// AssetTransactionSupport defines operations that run inside a caller-owned transaction
type AssetTransactionSupport interface {
	// FindAssetByIDForUpdate selects an asset and locks its row until the transaction ends.
	FindAssetByIDForUpdate(ctx context.Context, tx pgx.Tx, assetID string) (*domain.Asset, error)

	// SaveAssetInTx inserts a new asset within the given transaction.
	SaveAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error

	// UpdateAssetInTx overwrites the derived state of an asset within the given transaction.
	UpdateAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error

	// DeleteAssetInTx removes an asset row within the given transaction.
	DeleteAssetInTx(ctx context.Context, tx pgx.Tx, assetID string) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
	AssetTransactionSupport
}

// AssetRepositoryWithTx extends AssetRepositoryFacade with transaction capabilities
type AssetRepositoryWithTx interface {
	AssetRepositoryFacade
	TransactionManager
}
