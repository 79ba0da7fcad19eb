package services

import (
	"context"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
)

// AssetReaderSvc defines read-only asset operations.
// Every asset returned is paired with its latest market value.
type AssetReaderSvc interface {
	GetAssetByID(ctx context.Context, userID, assetID string) (*ledger.Valuation, error)
	ListAssets(ctx context.Context, userID string, includeInactive bool) ([]ledger.Valuation, error)
}

// AssetWriterSvc defines operations that modify assets outside the ledger.
type AssetWriterSvc interface {
	CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)
	// DeleteAsset removes the asset and every ledger entry referencing it.
	DeleteAsset(ctx context.Context, userID, assetID string) (*domain.DeletionSummary, error)
}

// AssetSvcFacade combines all asset service interfaces.
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
}
