package ledger

import (
	"sort"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LatestMarketValue resolves the value to display and aggregate for asset.
// history may be in any order and may contain entries of other assets; only
// entries referencing asset are considered.
//
// Resolution order, newest entry first:
//  1. the amount of the newest update_market_value entry with an amount
//  2. the newest positive current_value snapshot
//  3. asset.CurrentValue, then asset.InitialValue, then zero
func LatestMarketValue(asset domain.Asset, history []domain.Transaction) decimal.Decimal {
	own := make([]domain.Transaction, 0, len(history))
	for _, t := range history {
		if t.AssetID == asset.AssetID {
			own = append(own, t)
		}
	}
	SortNewestFirst(own)

	for _, t := range own {
		if t.TransactionType == domain.TxUpdateMarketValue && t.Amount != nil {
			return *t.Amount
		}
	}
	for _, t := range own {
		if t.CurrentValue != nil && t.CurrentValue.IsPositive() {
			return *t.CurrentValue
		}
	}
	if asset.CurrentValue != nil {
		return *asset.CurrentValue
	}
	if asset.InitialValue != nil {
		return *asset.InitialValue
	}
	return decimal.Zero
}

// SortNewestFirst orders entries by transaction_date desc, then created_at
// desc, then id desc so the order is total.
func SortNewestFirst(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})
}

// Valuation is one asset paired with its resolved market value.
type Valuation struct {
	Asset             domain.Asset
	LatestMarketValue decimal.Decimal
}

// ValueAssets resolves the latest market value of every asset against a
// shared history. Both the asset list and the net-worth aggregate go through
// here so they cannot disagree.
func ValueAssets(assets []domain.Asset, history []domain.Transaction) []Valuation {
	byAsset := make(map[string][]domain.Transaction, len(assets))
	for _, t := range history {
		byAsset[t.AssetID] = append(byAsset[t.AssetID], t)
	}
	out := make([]Valuation, 0, len(assets))
	for _, a := range assets {
		out = append(out, Valuation{Asset: a, LatestMarketValue: LatestMarketValue(a, byAsset[a.AssetID])})
	}
	return out
}

// NetWorth sums the latest market value of active assets. When liquidOnly is
// set only liquid assets are counted.
func NetWorth(valuations []Valuation, liquidOnly bool) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valuations {
		if !v.Asset.IsActive() {
			continue
		}
		if liquidOnly && !v.Asset.LiquidAssets {
			continue
		}
		total = total.Add(v.LatestMarketValue)
	}
	return total
}
