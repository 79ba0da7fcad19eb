package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrMalformedField reports a composite field that could not be parsed.
// It is never fatal: the entry is still recorded and the asset left untouched.
var ErrMalformedField = errors.New("malformed composite field")

// ErrAssetInactive reports a quantity-raising rule that was not applied
// because a sale entry closed the asset. Like ErrMalformedField it is never fatal.
var ErrAssetInactive = errors.New("asset is sold")

// Result is the outcome of projecting one entry onto an asset.
type Result struct {
	// Asset is the projected state. It never aliases the input asset.
	Asset domain.Asset
	// Cascade is set for delete entries: the asset and all of its entries
	// must be removed and no entry is recorded.
	Cascade bool
	// Changed reports whether any asset field was mutated.
	Changed bool
	// Skipped holds ErrMalformedField or ErrAssetInactive when a rule fired
	// but could not be applied.
	Skipped error
	// Unknown is set when the type is outside domain.KnownTransactionTypes.
	Unknown bool
}

// Apply projects in onto asset. Exactly one dispatch rule fires per type;
// the asset_purpose rule is applied on top of it for every non-delete type.
func Apply(asset domain.Asset, in domain.TransactionInput) Result {
	res := Result{Asset: asset.Clone(), Unknown: !in.TransactionType.IsKnown()}
	a := &res.Asset

	switch in.TransactionType {
	case domain.TxCreate:
		// asset already carries its initial values

	case domain.TxPurchase:
		if in.QuantityChange != nil {
			if asset.IsSold() {
				res.Skipped = fmt.Errorf("%w: purchase on asset %s", ErrAssetInactive, asset.AssetID)
				break
			}
			prior := decimal.Zero
			if a.Quantity != nil {
				prior = *a.Quantity
			}
			q := prior.Add(*in.QuantityChange)
			a.Quantity = &q
			res.Changed = true
		}

	case domain.TxSale:
		zeroQty, zeroValue := decimal.Zero, decimal.Zero
		a.Quantity = &zeroQty
		a.CurrentValue = &zeroValue
		if a.SoldAt == nil {
			soldAt := in.TransactionDate
			a.SoldAt = &soldAt
		}
		res.Changed = true

	case domain.TxValueUpdate, domain.TxUpdateMarketValue:
		if in.Amount != nil {
			v := *in.Amount
			a.CurrentValue = &v
			res.Changed = true
		}

	case domain.TxCashDeposit:
		if in.Amount != nil {
			prior := decimal.Zero
			if a.CurrentValue != nil {
				prior = *a.CurrentValue
			}
			v := prior.Add(*in.Amount)
			a.CurrentValue = &v
			res.Changed = true
		}

	case domain.TxUpdateAcquisitionValue:
		if in.Amount != nil {
			v := *in.Amount
			a.InitialValue = &v
			res.Changed = true
		}

	case domain.TxUpdateName:
		if in.AssetName != nil {
			a.Name = *in.AssetName
			res.Changed = true
		}

	case domain.TxUpdateType:
		if in.AssetType != nil {
			a.AssetType = *in.AssetType
			res.Changed = true
		}

	case domain.TxUpdateLiquidStatus:
		if in.LiquidAssets != nil {
			a.LiquidAssets = *in.LiquidAssets == domain.LiquidYes
			res.Changed = true
		}

	case domain.TxUpdateTimeHorizon:
		if in.TimeHorizon != nil {
			a.TimeHorizon = *in.TimeHorizon
			res.Changed = true
		}

	case domain.TxUpdateQuantityUnits:
		if in.UpdateQuantityUnits != nil {
			qty, unit, err := ParseQuantityUnits(*in.UpdateQuantityUnits)
			if err != nil {
				res.Skipped = err
				break
			}
			if asset.IsSold() {
				res.Skipped = fmt.Errorf("%w: update_quantity_units on asset %s", ErrAssetInactive, asset.AssetID)
				break
			}
			a.Quantity = &qty
			a.UnitOfMeasure = unit
			res.Changed = true
		}

	case domain.TxUpdateDescriptionProperties:
		if in.UpdateDescriptionProperties != nil {
			res.Changed = applyDescriptionProperties(a, *in.UpdateDescriptionProperties)
		}

	case domain.TxDelete:
		res.Cascade = true
		return res

	default:
		// stored verbatim, no asset effect
	}

	if purpose := strings.TrimSpace(deref(in.AssetPurpose)); purpose != "" {
		a.AssetPurpose = purpose
		res.Changed = true
	}
	return res
}

// ParseQuantityUnits splits a "quantity:unit" composite. It must have exactly
// two non-empty parts and the quantity must be a decimal.
func ParseQuantityUnits(raw string) (decimal.Decimal, string, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return decimal.Zero, "", fmt.Errorf("%w: update_quantity_units %q is not quantity:unit", ErrMalformedField, raw)
	}
	qtyPart, unit := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if qtyPart == "" || unit == "" {
		return decimal.Zero, "", fmt.Errorf("%w: update_quantity_units %q has an empty part", ErrMalformedField, raw)
	}
	qty, err := decimal.NewFromString(qtyPart)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("%w: update_quantity_units quantity %q: %v", ErrMalformedField, qtyPart, err)
	}
	return qty, unit, nil
}

// applyDescriptionProperties interprets raw as a JSON object carrying
// description and/or custom_properties; anything else becomes the plain-text
// description.
func applyDescriptionProperties(a *domain.Asset, raw string) bool {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		a.Description = raw
		return true
	}

	changed := false
	if desc, ok := obj["description"]; ok {
		if s, isString := desc.(string); isString {
			a.Description = s
		} else {
			a.Description = fmt.Sprint(desc)
		}
		changed = true
	}
	if props, ok := obj[domain.MetadataCustomProperties]; ok {
		if m, isMap := props.(map[string]any); isMap {
			a.MergeMetadata(m)
		} else {
			a.MergeMetadata(map[string]any{domain.MetadataCustomProperties: props})
		}
		changed = true
	}
	return changed
}
