package services

import (
	portsrepo "github.com/SscSPs/asset_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Asset:       NewAssetService(repos.AssetRepo, repos.TransactionRepo, options...),
		Transaction: NewTransactionService(repos.AssetRepo, repos.TransactionRepo, options...),
		Dashboard:   NewDashboardService(repos.AssetRepo, repos.TransactionRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AssetSvcFacade       = (*assetService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.DashboardSvc         = (*dashboardService)(nil)
)
