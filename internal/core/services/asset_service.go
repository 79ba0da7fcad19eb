package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
)

// assetService implements the AssetSvcFacade interface
type assetService struct {
	BaseService
	assetRepo portsrepo.AssetRepositoryWithTx
	txnRepo   portsrepo.TransactionRepositoryWithTx
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryWithTx, options ...ServiceOption) portssvc.AssetSvcFacade {
	return &assetService{
		BaseService: newBaseService(options...),
		assetRepo:   assetRepo,
		txnRepo:     txnRepo,
	}
}

// CreateAsset stores an asset directly, without recording a ledger entry.
func (s *assetService) CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error) {
	name := strings.TrimSpace(req.Name)
	assetType := strings.TrimSpace(req.AssetType)
	if name == "" || assetType == "" {
		return nil, apperrors.Validation("name and asset_type are required")
	}

	now := s.Now()
	asset := domain.Asset{
		AssetID:       uuid.NewString(),
		UserID:        userID,
		Name:          name,
		AssetType:     assetType,
		Description:   req.Description,
		InitialValue:  req.InitialValue,
		CurrentValue:  req.CurrentValue,
		Quantity:      req.Quantity,
		UnitOfMeasure: req.UnitOfMeasure,
		LiquidAssets:  req.LiquidAssets,
		IsSelected:    req.IsSelected,
		TimeHorizon:   req.TimeHorizon,
		AssetPurpose:  strings.TrimSpace(req.AssetPurpose),
		Metadata:      req.Metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.PurchaseDate != nil {
		d := req.PurchaseDate.Time
		asset.PurchaseDate = &d
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to create asset", slog.String("name", name))
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.LogInfo(ctx, "Asset created", slog.String("asset_id", asset.AssetID))
	return &asset, nil
}

// getOwnedAsset loads an asset and hides foreign ones behind ErrAssetNotFound.
func (s *assetService) getOwnedAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ledger.ErrAssetNotFound
		}
		s.LogError(ctx, err, "Failed to get asset", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := ledger.CheckOwnership(asset, userID); err != nil {
		return nil, err
	}
	return asset, nil
}

// GetAssetByID returns one of the caller's assets with its latest market value.
func (s *assetService) GetAssetByID(ctx context.Context, userID, assetID string) (*ledger.Valuation, error) {
	asset, err := s.getOwnedAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	history, err := s.txnRepo.ListTransactionsByAsset(ctx, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load asset history", slog.String("asset_id", assetID))
		return nil, err
	}
	return &ledger.Valuation{Asset: *asset, LatestMarketValue: ledger.LatestMarketValue(*asset, history)}, nil
}

// ListAssets returns the caller's assets, each with its latest market value.
func (s *assetService) ListAssets(ctx context.Context, userID string, includeInactive bool) ([]ledger.Valuation, error) {
	return valueUserAssets(ctx, &s.BaseService, s.assetRepo, s.txnRepo, userID, includeInactive)
}

// valueUserAssets loads a user's assets and their full history in two
// queries and resolves every latest market value against it.
func valueUserAssets(ctx context.Context, base *BaseService, assetRepo portsrepo.AssetReader, txnRepo portsrepo.TransactionReader, userID string, includeInactive bool) ([]ledger.Valuation, error) {
	assets, err := assetRepo.ListAssetsByUser(ctx, userID, includeInactive)
	if err != nil {
		base.LogError(ctx, err, "Failed to list assets")
		return nil, err
	}
	if len(assets) == 0 {
		return []ledger.Valuation{}, nil
	}

	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.AssetID
	}
	history, err := txnRepo.ListTransactionsByAssetIDs(ctx, ids)
	if err != nil {
		base.LogError(ctx, err, "Failed to load asset histories", slog.Int("asset_count", len(ids)))
		return nil, err
	}
	return ledger.ValueAssets(assets, history), nil
}

// UpdateAsset applies a generic field edit. No ledger entry is recorded.
func (s *assetService) UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	asset, err := s.getOwnedAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("name must not be empty")
		}
		asset.Name = name
	}
	if req.AssetType != nil {
		assetType := strings.TrimSpace(*req.AssetType)
		if assetType == "" {
			return nil, apperrors.Validation("asset_type must not be empty")
		}
		asset.AssetType = assetType
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.PurchaseDate != nil {
		d := req.PurchaseDate.Time
		asset.PurchaseDate = &d
	}
	if req.InitialValue != nil {
		asset.InitialValue = req.InitialValue
	}
	if req.CurrentValue != nil {
		asset.CurrentValue = req.CurrentValue
	}
	if req.Quantity != nil {
		asset.Quantity = req.Quantity
	}
	if req.UnitOfMeasure != nil {
		asset.UnitOfMeasure = *req.UnitOfMeasure
	}
	if req.LiquidAssets != nil {
		asset.LiquidAssets = *req.LiquidAssets
	}
	if req.IsSelected != nil {
		asset.IsSelected = *req.IsSelected
	}
	if req.TimeHorizon != nil {
		asset.TimeHorizon = *req.TimeHorizon
	}
	if req.AssetPurpose != nil {
		asset.AssetPurpose = strings.TrimSpace(*req.AssetPurpose)
	}
	if req.Metadata != nil {
		asset.Metadata = req.Metadata
	}

	asset.LastUpdatedAt = s.Now()
	asset.LastUpdatedBy = userID
	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, err
	}

	s.LogInfo(ctx, "Asset updated", slog.String("asset_id", assetID))
	return asset, nil
}

// DeleteAsset removes the asset and all of its entries in one database transaction.
func (s *assetService) DeleteAsset(ctx context.Context, userID, assetID string) (*domain.DeletionSummary, error) {
	tx, err := s.assetRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin asset delete")
		return nil, err
	}
	defer func() {
		if rbErr := s.assetRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back asset delete")
		}
	}()

	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ledger.ErrAssetNotFound
		}
		s.LogError(ctx, err, "Failed to lock asset", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := ledger.CheckOwnership(asset, userID); err != nil {
		return nil, err
	}

	n, err := s.txnRepo.DeleteTransactionsByAssetInTx(ctx, tx, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete asset transactions", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := s.assetRepo.DeleteAssetInTx(ctx, tx, assetID); err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := s.assetRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit asset delete", slog.String("asset_id", assetID))
		return nil, err
	}

	s.LogInfo(ctx, "Asset deleted", slog.String("asset_id", assetID), slog.Int64("transactions_deleted", n))
	return &domain.DeletionSummary{
		Message:                  fmt.Sprintf("Asset '%s' deleted successfully", asset.Name),
		AssetDeleted:             true,
		AssetID:                  assetID,
		AssetName:                asset.Name,
		TotalTransactionsDeleted: n,
	}, nil
}
