package dto

import (
	"time"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// CreateAssetRequest defines the data needed to create an asset directly,
// without a ledger entry.
type CreateAssetRequest struct {
	Name          string           `json:"name" binding:"required"`
	AssetType     string           `json:"asset_type" binding:"required"`
	Description   string           `json:"description"`
	PurchaseDate  *FlexibleDate    `json:"purchase_date"`
	InitialValue  *decimal.Decimal `json:"initial_value"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitOfMeasure string           `json:"unit_of_measure"`
	LiquidAssets  bool             `json:"liquid_assets"`
	IsSelected    bool             `json:"is_selected"`
	TimeHorizon   string           `json:"time_horizon"`
	AssetPurpose  string           `json:"asset_purpose"`
	Metadata      map[string]any   `json:"metadata"`
}

// UpdateAssetRequest defines the fields allowed for a generic asset edit.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Metadata, when present, replaces the stored map as a whole.
type UpdateAssetRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	AssetType     *string          `json:"asset_type" binding:"omitempty,min=1"`
	Description   *string          `json:"description"`
	PurchaseDate  *FlexibleDate    `json:"purchase_date"`
	InitialValue  *decimal.Decimal `json:"initial_value"`
	CurrentValue  *decimal.Decimal `json:"current_value"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	LiquidAssets  *bool            `json:"liquid_assets"`
	IsSelected    *bool            `json:"is_selected"`
	TimeHorizon   *string          `json:"time_horizon"`
	AssetPurpose  *string          `json:"asset_purpose"`
	Metadata      map[string]any   `json:"metadata"`
}

// ListAssetsParams defines the query parameters for listing assets.
type ListAssetsParams struct {
	IncludeInactive bool `form:"include_inactive"`
}

// AssetResponse defines the data returned for an asset.
type AssetResponse struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Name              string           `json:"name"`
	AssetType         string           `json:"asset_type"`
	Description       string           `json:"description"`
	PurchaseDate      *string          `json:"purchase_date"`
	InitialValue      *decimal.Decimal `json:"initial_value"`
	CurrentValue      *decimal.Decimal `json:"current_value"`
	Quantity          *decimal.Decimal `json:"quantity"`
	UnitOfMeasure     string           `json:"unit_of_measure"`
	LiquidAssets      bool             `json:"liquid_assets"`
	IsSelected        bool             `json:"is_selected"`
	TimeHorizon       string           `json:"time_horizon"`
	AssetPurpose      string           `json:"asset_purpose"`
	Metadata          map[string]any   `json:"metadata"`
	IsActive          bool             `json:"is_active"`
	SoldAt            *string          `json:"sold_at"`
	LatestMarketValue *decimal.Decimal `json:"latest_market_value,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// AssetDeleteResponse reports an asset deletion and the entries removed with it.
type AssetDeleteResponse struct {
	Message             string `json:"message"`
	AssetName           string `json:"asset_name"`
	TransactionsDeleted int64  `json:"transactions_deleted"`
}

// ToAssetResponse converts a domain.Asset to AssetResponse DTO
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.AssetID,
		UserID:        a.UserID,
		Name:          a.Name,
		AssetType:     a.AssetType,
		Description:   a.Description,
		PurchaseDate:  dateString(a.PurchaseDate),
		InitialValue:  a.InitialValue,
		CurrentValue:  a.CurrentValue,
		Quantity:      a.Quantity,
		UnitOfMeasure: a.UnitOfMeasure,
		LiquidAssets:  a.LiquidAssets,
		IsSelected:    a.IsSelected,
		TimeHorizon:   a.TimeHorizon,
		AssetPurpose:  a.AssetPurpose,
		Metadata:      a.Metadata,
		IsActive:      a.IsActive(),
		SoldAt:        dateString(a.SoldAt),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.LastUpdatedAt,
	}
}

// ToValuedAssetResponses converts valuations, attaching each asset's latest market value.
func ToValuedAssetResponses(vs []ledger.Valuation) []AssetResponse {
	responses := make([]AssetResponse, len(vs))
	for i := range vs {
		resp := ToAssetResponse(&vs[i].Asset)
		value := vs[i].LatestMarketValue
		resp.LatestMarketValue = &value
		responses[i] = resp
	}
	return responses
}
