package domain

import "github.com/shopspring/decimal"

// AllocationSlice is the summed market value of one asset type.
type AllocationSlice struct {
	AssetType string
	Value     decimal.Decimal
}

// DashboardSummary aggregates a user's active holdings.
type DashboardSummary struct {
	NetWorth           decimal.Decimal
	LiquidNetWorth     decimal.Decimal
	Allocation         []AllocationSlice
	RecentTransactions []Transaction
	ActiveAssetCount   int
}
