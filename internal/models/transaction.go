package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table: one ledger entry
// against an asset, plus the asset snapshot columns filled by create entries.
type Transaction struct {
	TransactionID   string              `json:"transactionID"`   // Primary Key (UUID)
	UserID          string              `json:"userID"`          // Not Null
	AssetID         string              `json:"assetID"`         // FK -> assets.asset_id ON DELETE CASCADE
	TransactionType string              `json:"transactionType"` // Stored verbatim, open vocabulary
	TransactionDate time.Time           `json:"transactionDate"` // DATE
	Amount          decimal.NullDecimal `json:"amount"`
	QuantityChange  decimal.NullDecimal `json:"quantityChange"`
	Notes           sql.NullString      `json:"notes"`
	Metadata        map[string]any      `json:"metadata"` // JSONB

	AssetName        sql.NullString      `json:"assetName"`
	AssetType        sql.NullString      `json:"assetType"`
	AcquisitionValue decimal.NullDecimal `json:"acquisitionValue"`
	CurrentValue     decimal.NullDecimal `json:"currentValue"`
	Quantity         decimal.NullDecimal `json:"quantity"`
	UnitOfMeasure    sql.NullString      `json:"unitOfMeasure"`
	CustomProperties sql.NullString      `json:"customProperties"`
	AssetDescription sql.NullString      `json:"assetDescription"`

	AuditFields
}
