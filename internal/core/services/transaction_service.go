package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
)

// ErrTransactionNotFound is returned when an entry is missing or owned by another user.
var ErrTransactionNotFound = apperrors.NotFound("Transaction not found")

// ErrAssociatedAssetNotFound is returned when a create entry outlived its asset.
var ErrAssociatedAssetNotFound = apperrors.NotFound("Associated asset not found")

// transactionService records ledger entries and keeps their assets in sync.
type transactionService struct {
	BaseService
	assetRepo portsrepo.AssetRepositoryWithTx
	txnRepo   portsrepo.TransactionRepositoryWithTx
}

// NewTransactionService creates a new ledger service.
func NewTransactionService(assetRepo portsrepo.AssetRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryWithTx, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(options...),
		assetRepo:   assetRepo,
		txnRepo:     txnRepo,
	}
}

// RecordTransaction validates the entry, then persists it together with the
// asset mutation it implies inside one database transaction.
func (s *transactionService) RecordTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.LedgerResult, error) {
	in := req.ToDomainInput()
	if err := ledger.Validate(in); err != nil {
		s.LogWarn(ctx, err, "Rejected ledger entry", slog.String("transaction_type", string(in.TransactionType)))
		return nil, err
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin ledger transaction")
		return nil, err
	}
	defer func() {
		if rbErr := s.txnRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back ledger transaction")
		}
	}()

	var result *domain.LedgerResult
	if in.TransactionType == domain.TxCreate {
		result, err = s.recordCreate(ctx, tx, userID, in)
	} else {
		result, err = s.recordAgainstAsset(ctx, tx, userID, in)
	}
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit ledger entry",
			slog.String("transaction_type", string(in.TransactionType)),
			slog.Any("payload", req))
		return nil, err
	}

	if result.Deletion != nil {
		s.LogInfo(ctx, "Asset deleted through ledger entry",
			slog.String("asset_id", result.Deletion.AssetID),
			slog.Int64("transactions_deleted", result.Deletion.TotalTransactionsDeleted))
	} else {
		s.LogInfo(ctx, "Ledger entry recorded",
			slog.String("transaction_id", result.Transaction.TransactionID),
			slog.String("asset_id", result.Transaction.AssetID),
			slog.String("transaction_type", string(result.Transaction.TransactionType)))
	}
	return result, nil
}

// recordCreate instantiates the asset the entry describes and records the entry against it.
func (s *transactionService) recordCreate(ctx context.Context, tx pgx.Tx, userID string, in domain.TransactionInput) (*domain.LedgerResult, error) {
	now := s.Now()
	assetID := uuid.NewString()

	res := ledger.Apply(ledger.SynthesizeAsset(in, assetID, userID, now), in)
	if err := s.assetRepo.SaveAssetInTx(ctx, tx, res.Asset); err != nil {
		s.LogError(ctx, err, "Failed to save asset for create entry", slog.String("asset_id", assetID))
		return nil, err
	}

	txn := ledger.BuildTransaction(in, uuid.NewString(), assetID, userID, now)
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save create entry", slog.String("asset_id", assetID))
		return nil, err
	}

	return &domain.LedgerResult{Transaction: &txn, Asset: &res.Asset}, nil
}

// recordAgainstAsset locks the referenced asset, projects the entry onto it and
// persists the outcome. Delete entries remove the asset and its history.
func (s *transactionService) recordAgainstAsset(ctx context.Context, tx pgx.Tx, userID string, in domain.TransactionInput) (*domain.LedgerResult, error) {
	asset, err := s.lockOwnedAsset(ctx, tx, userID, *in.AssetID, ledger.ErrAssetNotFound)
	if err != nil {
		return nil, err
	}

	res := ledger.Apply(*asset, in)
	if res.Unknown {
		s.LogWarn(ctx, nil, "Unrecognized transaction type recorded without asset effect",
			slog.String("transaction_type", string(in.TransactionType)),
			slog.String("asset_id", asset.AssetID))
	}
	if res.Skipped != nil {
		s.LogWarn(ctx, res.Skipped, "Ledger rule not applied",
			slog.String("transaction_type", string(in.TransactionType)),
			slog.String("asset_id", asset.AssetID))
	}

	if res.Cascade {
		n, err := s.cascadeDeleteAsset(ctx, tx, asset.AssetID)
		if err != nil {
			return nil, err
		}
		return &domain.LedgerResult{Deletion: &domain.DeletionSummary{
			Message:                  fmt.Sprintf("Asset '%s' and all %d related transactions deleted", asset.Name, n),
			TransactionType:          domain.TxDelete,
			AssetDeleted:             true,
			AssetID:                  asset.AssetID,
			AssetName:                asset.Name,
			TotalTransactionsDeleted: n,
		}}, nil
	}

	now := s.Now()
	txn := ledger.BuildTransaction(in, uuid.NewString(), asset.AssetID, userID, now)
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("asset_id", asset.AssetID))
		return nil, err
	}

	if res.Changed {
		res.Asset.LastUpdatedAt = now
		res.Asset.LastUpdatedBy = userID
		if err := s.assetRepo.UpdateAssetInTx(ctx, tx, res.Asset); err != nil {
			s.LogError(ctx, err, "Failed to apply ledger entry to asset", slog.String("asset_id", asset.AssetID))
			return nil, err
		}
	}

	return &domain.LedgerResult{Transaction: &txn, Asset: &res.Asset}, nil
}

// lockOwnedAsset selects the asset FOR UPDATE, reporting notFound for missing and foreign assets alike.
func (s *transactionService) lockOwnedAsset(ctx context.Context, tx pgx.Tx, userID, assetID string, notFound error) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound
		}
		s.LogError(ctx, err, "Failed to lock asset", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := ledger.CheckOwnership(asset, userID); err != nil {
		s.LogWarn(ctx, nil, "Asset not owned by caller", slog.String("asset_id", assetID))
		return nil, notFound
	}
	return asset, nil
}

// cascadeDeleteAsset removes every entry of the asset, then the asset itself.
func (s *transactionService) cascadeDeleteAsset(ctx context.Context, tx pgx.Tx, assetID string) (int64, error) {
	n, err := s.txnRepo.DeleteTransactionsByAssetInTx(ctx, tx, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete asset transactions", slog.String("asset_id", assetID))
		return 0, err
	}
	if err := s.assetRepo.DeleteAssetInTx(ctx, tx, assetID); err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return 0, err
	}
	return n, nil
}

// DeleteTransaction removes one entry. Removing the create entry of an asset
// removes the asset and all of its entries.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.DeletionSummary, error) {
	// Read without a lock first to learn the asset; locks are then taken
	// asset first, entry second, matching RecordTransaction.
	found, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin delete transaction")
		return nil, err
	}
	defer func() {
		if rbErr := s.txnRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back delete transaction")
		}
	}()

	isCreate := found.TransactionType == domain.TxCreate
	var asset *domain.Asset
	if isCreate {
		asset, err = s.lockOwnedAsset(ctx, tx, userID, found.AssetID, ErrAssociatedAssetNotFound)
		if err != nil {
			return nil, err
		}
	} else {
		asset, err = s.assetRepo.FindAssetByIDForUpdate(ctx, tx, found.AssetID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock asset", slog.String("asset_id", found.AssetID))
			return nil, err
		}
	}

	txn, err := s.txnRepo.FindTransactionByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	var summary *domain.DeletionSummary
	if isCreate {
		n, err := s.cascadeDeleteAsset(ctx, tx, asset.AssetID)
		if err != nil {
			return nil, err
		}
		summary = &domain.DeletionSummary{
			Message:                  fmt.Sprintf("Create Asset transaction deleted - removed asset '%s' and all %d related transactions", asset.Name, n),
			TransactionType:          domain.TxCreate,
			AssetDeleted:             true,
			AssetID:                  asset.AssetID,
			AssetName:                asset.Name,
			TotalTransactionsDeleted: n,
		}
	} else {
		if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, txn.TransactionID); err != nil {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
			return nil, err
		}
		assetName := "Unknown"
		if asset != nil {
			assetName = asset.Name
		}
		summary = &domain.DeletionSummary{
			Message:                  fmt.Sprintf("Transaction '%s' for asset '%s' deleted successfully", txn.TransactionType, assetName),
			TransactionType:          txn.TransactionType,
			AssetID:                  txn.AssetID,
			AssetName:                assetName,
			TotalTransactionsDeleted: 1,
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit delete", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.Bool("asset_deleted", summary.AssetDeleted),
		slog.Int64("transactions_deleted", summary.TotalTransactionsDeleted))
	return summary, nil
}

// GetTransactionByID retrieves one of the caller's entries.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if txn.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// ListTransactions returns a page of the caller's entries, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}
	txns, next, err := s.txnRepo.ListTransactionsByUser(ctx, userID, params.Limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

// ListAssetTransactions returns every entry of one of the caller's assets, newest first.
func (s *transactionService) ListAssetTransactions(ctx context.Context, userID, assetID string) ([]domain.Transaction, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to get asset", slog.String("asset_id", assetID))
		return nil, err
	}
	if err := ledger.CheckOwnership(asset, userID); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAsset(ctx, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list asset transactions", slog.String("asset_id", assetID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

// UpdateTransaction edits the cosmetic fields of one of the caller's entries.
// The asset is not re-projected.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	update := req.ToDomainUpdate()
	changed := false
	if update.TransactionDate != nil {
		txn.TransactionDate = *update.TransactionDate
		changed = true
	}
	if update.Amount != nil {
		txn.Amount = update.Amount
		changed = true
	}
	if update.QuantityChange != nil {
		txn.QuantityChange = update.QuantityChange
		changed = true
	}
	if update.Notes != nil {
		txn.Notes = *update.Notes
		changed = true
	}
	if update.Metadata != nil {
		txn.Metadata = update.Metadata
		changed = true
	}
	if !changed {
		return txn, nil
	}

	txn.LastUpdatedAt = s.Now()
	txn.LastUpdatedBy = userID
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}
