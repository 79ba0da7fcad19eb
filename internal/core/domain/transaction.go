package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags what a ledger entry does to its asset.
// The set of constants below is closed; values outside it are stored verbatim
// and have no effect on the asset.
type TransactionType string

const (
	TxCreate                      TransactionType = "create"
	TxPurchase                    TransactionType = "purchase"
	TxSale                        TransactionType = "sale"
	TxValueUpdate                 TransactionType = "value_update"
	TxUpdateMarketValue           TransactionType = "update_market_value"
	TxCashDeposit                 TransactionType = "cash_deposit"
	TxUpdateAcquisitionValue      TransactionType = "update_acquisition_value"
	TxUpdateName                  TransactionType = "update_name"
	TxUpdateType                  TransactionType = "update_type"
	TxUpdateLiquidStatus          TransactionType = "update_liquid_status"
	TxUpdateTimeHorizon           TransactionType = "update_time_horizon"
	TxUpdateQuantityUnits         TransactionType = "update_quantity_units"
	TxUpdateDescriptionProperties TransactionType = "update_description_properties"
	TxDelete                      TransactionType = "delete"
)

// KnownTransactionTypes lists every type the projection engine dispatches on.
var KnownTransactionTypes = []TransactionType{
	TxCreate,
	TxPurchase,
	TxSale,
	TxValueUpdate,
	TxUpdateMarketValue,
	TxCashDeposit,
	TxUpdateAcquisitionValue,
	TxUpdateName,
	TxUpdateType,
	TxUpdateLiquidStatus,
	TxUpdateTimeHorizon,
	TxUpdateQuantityUnits,
	TxUpdateDescriptionProperties,
	TxDelete,
}

// IsKnown reports whether t is one of the dispatched transaction types.
func (t TransactionType) IsKnown() bool {
	for _, k := range KnownTransactionTypes {
		if t == k {
			return true
		}
	}
	return false
}

// LiquidYes is the sentinel that marks an asset liquid in update_liquid_status entries.
const LiquidYes = "YES"

// Transaction represents one ledger event against an asset.
// Create entries additionally carry a snapshot of the asset fields they created.
type Transaction struct {
	TransactionID   string           `json:"transactionID"`
	UserID          string           `json:"userID"`
	AssetID         string           `json:"assetID"`
	TransactionType TransactionType  `json:"transactionType"`
	TransactionDate time.Time        `json:"transactionDate"`
	Amount          *decimal.Decimal `json:"amount"`
	QuantityChange  *decimal.Decimal `json:"quantityChange"`
	Notes           string           `json:"notes"`
	Metadata        map[string]any   `json:"metadata"`

	// Snapshot of the asset at entry time.
	AssetName        string           `json:"assetName"`
	AssetType        string           `json:"assetType"`
	AcquisitionValue *decimal.Decimal `json:"acquisitionValue"`
	CurrentValue     *decimal.Decimal `json:"currentValue"`
	Quantity         *decimal.Decimal `json:"quantity"`
	UnitOfMeasure    string           `json:"unitOfMeasure"`
	CustomProperties string           `json:"customProperties"`
	AssetDescription string           `json:"assetDescription"`

	AuditFields
}

// TransactionInput is a caller-submitted ledger entry before validation.
// Nil pointers mean the field was absent from the request.
type TransactionInput struct {
	TransactionType TransactionType
	TransactionDate time.Time
	AssetID         *string
	Amount          *decimal.Decimal
	QuantityChange  *decimal.Decimal
	Notes           *string
	Metadata        map[string]any

	AssetName        *string
	AssetType        *string
	AcquisitionValue *decimal.Decimal
	CurrentValue     *decimal.Decimal
	Quantity         *decimal.Decimal
	UnitOfMeasure    *string
	CustomProperties *string
	AssetDescription *string

	// LiquidAssets holds the raw flag. Create entries treat "YES" and "true"
	// as liquid; update_liquid_status only accepts "YES".
	LiquidAssets *string
	TimeHorizon  *string
	AssetPurpose *string

	// UpdateQuantityUnits is the composite "quantity:unit" field.
	UpdateQuantityUnits *string
	// UpdateDescriptionProperties is either a JSON object or plain text.
	UpdateDescriptionProperties *string
}

// TransactionUpdate carries the cosmetic fields that may be edited after an
// entry is recorded. Type and asset reference are immutable.
type TransactionUpdate struct {
	TransactionDate *time.Time
	Amount          *decimal.Decimal
	QuantityChange  *decimal.Decimal
	Notes           *string
	Metadata        map[string]any
}

// DeletionSummary reports the outcome of deleting ledger entries and/or an asset.
type DeletionSummary struct {
	Message                  string
	TransactionType          TransactionType
	AssetDeleted             bool
	AssetID                  string
	AssetName                string
	TotalTransactionsDeleted int64
}

// LedgerResult is what recording a ledger entry produces: either the persisted
// transaction, or a deletion summary when the entry was a delete.
type LedgerResult struct {
	Transaction *Transaction
	Asset       *Asset
	Deletion    *DeletionSummary
}
