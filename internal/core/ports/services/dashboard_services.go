package services

import (
	"context"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
)

// DashboardSvc aggregates a user's holdings.
type DashboardSvc interface {
	GetSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}
