package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
)

// recentTransactionsLimit is how many entries the dashboard shows.
const recentTransactionsLimit = 5

type dashboardService struct {
	BaseService
	assetRepo portsrepo.AssetReader
	txnRepo   portsrepo.TransactionReader
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(assetRepo portsrepo.AssetReader, txnRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.DashboardSvc {
	return &dashboardService{
		BaseService: newBaseService(options...),
		assetRepo:   assetRepo,
		txnRepo:     txnRepo,
	}
}

// GetSummary aggregates the caller's active assets. Values come from the same
// resolver as the asset list, so net worth equals the sum of listed values.
func (s *dashboardService) GetSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	valuations, err := valueUserAssets(ctx, &s.BaseService, s.assetRepo, s.txnRepo, userID, false)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.txnRepo.ListTransactionsByUser(ctx, userID, recentTransactionsLimit, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent transactions")
		return nil, err
	}
	if recent == nil {
		recent = []domain.Transaction{}
	}

	summary := &domain.DashboardSummary{
		NetWorth:           ledger.NetWorth(valuations, false),
		LiquidNetWorth:     ledger.NetWorth(valuations, true),
		Allocation:         allocate(valuations),
		RecentTransactions: recent,
	}
	for _, v := range valuations {
		if v.Asset.IsActive() {
			summary.ActiveAssetCount++
		}
	}

	s.LogDebug(ctx, "Dashboard summary computed",
		slog.Int("asset_count", summary.ActiveAssetCount),
		slog.String("net_worth", summary.NetWorth.String()))
	return summary, nil
}

// allocate sums active valuations per asset type, largest slice first.
func allocate(valuations []ledger.Valuation) []domain.AllocationSlice {
	totals := make(map[string]decimal.Decimal)
	for _, v := range valuations {
		if !v.Asset.IsActive() {
			continue
		}
		totals[v.Asset.AssetType] = totals[v.Asset.AssetType].Add(v.LatestMarketValue)
	}

	slices := make([]domain.AllocationSlice, 0, len(totals))
	for assetType, value := range totals {
		slices = append(slices, domain.AllocationSlice{AssetType: assetType, Value: value})
	}
	sort.Slice(slices, func(i, j int) bool {
		if c := slices[i].Value.Cmp(slices[j].Value); c != 0 {
			return c > 0
		}
		return slices[i].AssetType < slices[j].AssetType
	})
	return slices
}
