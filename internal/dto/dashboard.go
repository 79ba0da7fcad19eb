package dto

import (
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
)

// AllocationResponse is one asset-type slice of the net worth.
type AllocationResponse struct {
	AssetType  string          `json:"asset_type"`
	Value      decimal.Decimal `json:"value"`
	Percentage string          `json:"percentage"`
}

// DashboardSummaryResponse defines the data returned by the dashboard summary.
type DashboardSummaryResponse struct {
	NetWorth           decimal.Decimal       `json:"net_worth"`
	LiquidNetWorth     decimal.Decimal       `json:"liquid_net_worth"`
	AssetAllocation    []AllocationResponse  `json:"asset_allocation"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	AssetCount         int                   `json:"asset_count"`
}

// ToDashboardSummaryResponse converts a domain.DashboardSummary.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	allocation := make([]AllocationResponse, len(s.Allocation))
	for i, slice := range s.Allocation {
		allocation[i] = AllocationResponse{
			AssetType:  slice.AssetType,
			Value:      slice.Value,
			Percentage: utils.FormatPercentage(slice.Value, s.NetWorth),
		}
	}
	return DashboardSummaryResponse{
		NetWorth:           s.NetWorth,
		LiquidNetWorth:     s.LiquidNetWorth,
		AssetAllocation:    allocation,
		RecentTransactions: ToTransactionResponses(s.RecentTransactions),
		AssetCount:         s.ActiveAssetCount,
	}
}
