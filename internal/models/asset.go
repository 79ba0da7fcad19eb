package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Asset is the row shape of the assets table.
type Asset struct {
	AssetID       string              `json:"assetID"` // Primary Key (UUID)
	UserID        string              `json:"userID"`  // Not Null
	Name          string              `json:"name"`
	AssetType     string              `json:"assetType"`
	Description   sql.NullString      `json:"description"`
	PurchaseDate  *time.Time          `json:"purchaseDate"` // DATE, nullable
	InitialValue  decimal.NullDecimal `json:"initialValue"`
	CurrentValue  decimal.NullDecimal `json:"currentValue"`
	Quantity      decimal.NullDecimal `json:"quantity"`
	UnitOfMeasure sql.NullString      `json:"unitOfMeasure"`
	LiquidAssets  bool                `json:"liquidAssets"`
	IsSelected    bool                `json:"isSelected"`
	TimeHorizon   sql.NullString      `json:"timeHorizon"`
	AssetPurpose  sql.NullString      `json:"assetPurpose"`
	Metadata      map[string]any      `json:"metadata"` // JSONB
	SoldAt        *time.Time          `json:"soldAt"`   // DATE, set by the first sale entry
	AuditFields
}
