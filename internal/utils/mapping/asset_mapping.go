package mapping

import (
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/models"
)

// ToModelAsset converts a domain Asset to a model Asset
func ToModelAsset(d domain.Asset) models.Asset {
	return models.Asset{
		AssetID:       d.AssetID,
		UserID:        d.UserID,
		Name:          d.Name,
		AssetType:     d.AssetType,
		Description:   toNullString(d.Description),
		PurchaseDate:  d.PurchaseDate,
		InitialValue:  toNullDecimal(d.InitialValue),
		CurrentValue:  toNullDecimal(d.CurrentValue),
		Quantity:      toNullDecimal(d.Quantity),
		UnitOfMeasure: toNullString(d.UnitOfMeasure),
		LiquidAssets:  d.LiquidAssets,
		IsSelected:    d.IsSelected,
		TimeHorizon:   toNullString(d.TimeHorizon),
		AssetPurpose:  toNullString(d.AssetPurpose),
		Metadata:      d.Metadata,
		SoldAt:        d.SoldAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAsset converts a model Asset to a domain Asset
func ToDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:       m.AssetID,
		UserID:        m.UserID,
		Name:          m.Name,
		AssetType:     m.AssetType,
		Description:   m.Description.String,
		PurchaseDate:  m.PurchaseDate,
		InitialValue:  fromNullDecimal(m.InitialValue),
		CurrentValue:  fromNullDecimal(m.CurrentValue),
		Quantity:      fromNullDecimal(m.Quantity),
		UnitOfMeasure: m.UnitOfMeasure.String,
		LiquidAssets:  m.LiquidAssets,
		IsSelected:    m.IsSelected,
		TimeHorizon:   m.TimeHorizon.String,
		AssetPurpose:  m.AssetPurpose.String,
		Metadata:      m.Metadata,
		SoldAt:        m.SoldAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAssetSlice converts a slice of model Assets to domain Assets
func ToDomainAssetSlice(ms []models.Asset) []domain.Asset {
	ds := make([]domain.Asset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAsset(m)
	}
	return ds
}
