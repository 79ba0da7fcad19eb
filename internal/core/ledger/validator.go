// Package ledger holds the transaction-to-asset reconciliation rules:
// validating and normalizing ledger entries, projecting them onto assets and
// resolving an asset's latest market value from its history.
package ledger

import (
	"strings"
	"time"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	msgCreateFieldsRequired = "asset_name and asset_type are required for create transactions"
	msgAssetIDRequired      = "asset_id is required for non-create transactions"
	msgAssetNotFound        = "Asset not found"
)

// ErrAssetNotFound is returned when a referenced asset is missing or owned by another user.
var ErrAssetNotFound = apperrors.NotFound(msgAssetNotFound)

// Validate checks that the companion fields required by the entry's type are present.
// It performs no I/O; asset existence and ownership are checked by the caller.
func Validate(in domain.TransactionInput) error {
	if in.TransactionType == domain.TxCreate {
		if isBlank(in.AssetName) || isBlank(in.AssetType) {
			return apperrors.Validation(msgCreateFieldsRequired)
		}
		return nil
	}
	if isBlank(in.AssetID) {
		return apperrors.Validation(msgAssetIDRequired)
	}
	return nil
}

// CheckOwnership folds the ownership check into existence so that foreign
// assets are indistinguishable from missing ones.
func CheckOwnership(asset *domain.Asset, userID string) error {
	if asset == nil || asset.UserID != userID {
		return ErrAssetNotFound
	}
	return nil
}

// Normalized is a create entry with every default applied.
type Normalized struct {
	AcquisitionValue decimal.Decimal
	CurrentValue     decimal.Decimal
	Quantity         decimal.Decimal
	UnitOfMeasure    string
	CustomProperties string
	Description      string
	Liquid           bool
	TimeHorizon      string
	AssetPurpose     string
}

// Normalize applies the create defaults to in.
func Normalize(in domain.TransactionInput) Normalized {
	n := Normalized{
		AcquisitionValue: decimal.Zero,
		Quantity:         decimal.NewFromInt(1),
		UnitOfMeasure:    deref(in.UnitOfMeasure),
		CustomProperties: deref(in.CustomProperties),
		Description:      deref(in.AssetDescription),
		Liquid:           isLiquidFlag(in.LiquidAssets),
		TimeHorizon:      deref(in.TimeHorizon),
		AssetPurpose:     strings.TrimSpace(deref(in.AssetPurpose)),
	}
	if in.AcquisitionValue != nil {
		n.AcquisitionValue = *in.AcquisitionValue
	}
	n.CurrentValue = n.AcquisitionValue
	if in.CurrentValue != nil {
		n.CurrentValue = *in.CurrentValue
	}
	if in.Quantity != nil {
		n.Quantity = *in.Quantity
	}
	return n
}

// SynthesizeAsset builds the not-yet-persisted asset a create entry instantiates.
func SynthesizeAsset(in domain.TransactionInput, assetID, userID string, now time.Time) domain.Asset {
	n := Normalize(in)
	purchaseDate := in.TransactionDate
	asset := domain.Asset{
		AssetID:       assetID,
		UserID:        userID,
		Name:          strings.TrimSpace(*in.AssetName),
		AssetType:     strings.TrimSpace(*in.AssetType),
		Description:   n.Description,
		PurchaseDate:  &purchaseDate,
		InitialValue:  &n.AcquisitionValue,
		CurrentValue:  &n.CurrentValue,
		Quantity:      &n.Quantity,
		UnitOfMeasure: n.UnitOfMeasure,
		LiquidAssets:  n.Liquid,
		TimeHorizon:   n.TimeHorizon,
		AssetPurpose:  n.AssetPurpose,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if n.CustomProperties != "" {
		asset.Metadata = map[string]any{domain.MetadataCustomProperties: n.CustomProperties}
	}
	return asset
}

// BuildTransaction assembles the ledger row persisted for in against assetID.
// Create entries carry the full normalized asset snapshot.
func BuildTransaction(in domain.TransactionInput, transactionID, assetID, userID string, now time.Time) domain.Transaction {
	txn := domain.Transaction{
		TransactionID:   transactionID,
		UserID:          userID,
		AssetID:         assetID,
		TransactionType: in.TransactionType,
		TransactionDate: in.TransactionDate,
		Amount:          in.Amount,
		QuantityChange:  in.QuantityChange,
		Notes:           deref(in.Notes),
		Metadata:        in.Metadata,

		AssetName:        deref(in.AssetName),
		AssetType:        deref(in.AssetType),
		AcquisitionValue: in.AcquisitionValue,
		CurrentValue:     in.CurrentValue,
		Quantity:         in.Quantity,
		UnitOfMeasure:    deref(in.UnitOfMeasure),
		CustomProperties: deref(in.CustomProperties),
		AssetDescription: deref(in.AssetDescription),

		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if in.TransactionType != domain.TxCreate {
		return txn
	}

	n := Normalize(in)
	amount := n.AcquisitionValue
	if in.Amount != nil {
		amount = *in.Amount
	}
	quantityChange := n.Quantity
	if in.QuantityChange != nil {
		quantityChange = *in.QuantityChange
	}
	txn.Amount = &amount
	txn.QuantityChange = &quantityChange
	txn.AssetName = strings.TrimSpace(txn.AssetName)
	txn.AssetType = strings.TrimSpace(txn.AssetType)
	txn.AcquisitionValue = &n.AcquisitionValue
	txn.CurrentValue = &n.CurrentValue
	txn.Quantity = &n.Quantity

	meta := map[string]any{"liquid_assets": n.Liquid, "time_horizon": nil}
	if n.TimeHorizon != "" {
		meta["time_horizon"] = n.TimeHorizon
	}
	for k, v := range in.Metadata {
		meta[k] = v
	}
	txn.Metadata = meta
	return txn
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isLiquidFlag reads the create-entry liquidity flag, which may arrive either
// as the YES sentinel or a boolean.
func isLiquidFlag(s *string) bool {
	if s == nil {
		return false
	}
	v := strings.TrimSpace(*s)
	return v == domain.LiquidYes || strings.EqualFold(v, "true")
}
