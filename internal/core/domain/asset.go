package domain

import (
	"maps"
	"time"

	"github.com/shopspring/decimal"
)

// MetadataCustomProperties is the metadata key holding free-form custom
// properties captured when an asset is created through the ledger.
const MetadataCustomProperties = "custom_properties"

// Asset represents one unit of a user's holdings.
// Its derived state is mutated exclusively through ledger entries.
type Asset struct {
	AssetID       string           `json:"assetID"`
	UserID        string           `json:"userID"`
	Name          string           `json:"name"`
	AssetType     string           `json:"assetType"` // open vocabulary: stock, cash, real_estate, ...
	Description   string           `json:"description"`
	PurchaseDate  *time.Time       `json:"purchaseDate"`
	InitialValue  *decimal.Decimal `json:"initialValue"` // acquisition cost
	CurrentValue  *decimal.Decimal `json:"currentValue"` // latest known market value
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitOfMeasure string           `json:"unitOfMeasure"`
	LiquidAssets  bool             `json:"liquidAssets"`
	IsSelected    bool             `json:"isSelected"`
	TimeHorizon   string           `json:"timeHorizon"`
	AssetPurpose  string           `json:"assetPurpose"`
	Metadata      map[string]any   `json:"metadata"`
	// SoldAt is the date of the sale entry that closed the position.
	// Once set, no entry may raise the quantity again.
	SoldAt        *time.Time       `json:"soldAt"`
	AuditFields
}

// IsActive reports whether the asset still counts as held.
// A nil or non-positive quantity marks the asset as inactive; see IsSold for
// the terminal state.
func (a Asset) IsActive() bool {
	return a.Quantity != nil && a.Quantity.IsPositive()
}

// IsSold reports whether a sale entry has closed the position.
func (a Asset) IsSold() bool {
	return a.SoldAt != nil
}

// Clone returns a copy whose pointer and map fields do not alias a.
func (a Asset) Clone() Asset {
	c := a
	c.PurchaseDate = clonePtr(a.PurchaseDate)
	c.InitialValue = clonePtr(a.InitialValue)
	c.CurrentValue = clonePtr(a.CurrentValue)
	c.Quantity = clonePtr(a.Quantity)
	c.SoldAt = clonePtr(a.SoldAt)
	if a.Metadata != nil {
		c.Metadata = maps.Clone(a.Metadata)
	}
	return c
}

// MergeMetadata copies every entry of props into the asset's metadata,
// keeping keys that props does not mention.
func (a *Asset) MergeMetadata(props map[string]any) {
	if len(props) == 0 {
		return
	}
	if a.Metadata == nil {
		a.Metadata = make(map[string]any, len(props))
	}
	for k, v := range props {
		a.Metadata[k] = v
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
