package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/core/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
)

type AssetServiceTestSuite struct {
	suite.Suite
	mockAssetRepo *MockAssetRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.AssetSvcFacade
	dashboard     portssvc.DashboardSvc
	tx            *fakeTx
	userID        string
	stock         domain.Asset
	cash          domain.Asset
	history       []domain.Transaction
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	clock := services.WithClock(func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) })
	container := services.NewServiceContainer(portsRepos(suite.mockAssetRepo, suite.mockTxnRepo), clock)
	suite.service = container.Asset
	suite.dashboard = container.Dashboard
	suite.tx = &fakeTx{}
	suite.userID = uuid.NewString()

	suite.stock = domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       suite.userID,
		Name:         "AAPL",
		AssetType:    "stock",
		InitialValue: decPtr("1000"),
		CurrentValue: decPtr("1000"),
		Quantity:     decPtr("10"),
	}
	suite.cash = domain.Asset{
		AssetID:      uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Savings",
		AssetType:    "cash",
		InitialValue: decPtr("300"),
		CurrentValue: decPtr("300"),
		Quantity:     decPtr("1"),
		LiquidAssets: true,
	}

	day := func(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }
	suite.history = []domain.Transaction{
		{TransactionID: "t1", AssetID: suite.stock.AssetID, TransactionType: domain.TxCreate, TransactionDate: day(1), CurrentValue: decPtr("1000")},
		{TransactionID: "t2", AssetID: suite.stock.AssetID, TransactionType: domain.TxUpdateMarketValue, TransactionDate: day(5), Amount: decPtr("1500")},
		{TransactionID: "t3", AssetID: suite.cash.AssetID, TransactionType: domain.TxCreate, TransactionDate: day(2), CurrentValue: decPtr("300")},
	}
}

func (suite *AssetServiceTestSuite) TestListAssets_AttachesLatestMarketValue() {
	ctx := context.Background()
	suite.mockAssetRepo.On("ListAssetsByUser", ctx, suite.userID, false).Return([]domain.Asset{suite.stock, suite.cash}, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAssetIDs", ctx, []string{suite.stock.AssetID, suite.cash.AssetID}).Return(suite.history, nil).Once()

	valuations, err := suite.service.ListAssets(ctx, suite.userID, false)

	suite.Require().NoError(err)
	suite.Require().Len(valuations, 2)
	suite.True(valuations[0].LatestMarketValue.Equal(decimal.NewFromInt(1500)))
	suite.True(valuations[1].LatestMarketValue.Equal(decimal.NewFromInt(300)))
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestListAssets_EmptySkipsHistoryQuery() {
	ctx := context.Background()
	suite.mockAssetRepo.On("ListAssetsByUser", ctx, suite.userID, true).Return([]domain.Asset{}, nil).Once()

	valuations, err := suite.service.ListAssets(ctx, suite.userID, true)

	suite.Require().NoError(err)
	suite.NotNil(valuations)
	suite.Empty(valuations)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAssetIDs", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDashboard_NetWorthMatchesListedValues() {
	ctx := context.Background()
	assets := []domain.Asset{suite.stock, suite.cash}
	ids := []string{suite.stock.AssetID, suite.cash.AssetID}
	suite.mockAssetRepo.On("ListAssetsByUser", ctx, suite.userID, false).Return(assets, nil).Twice()
	suite.mockTxnRepo.On("ListTransactionsByAssetIDs", ctx, ids).Return(suite.history, nil).Twice()
	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 5, (*string)(nil)).Return(suite.history, nil, nil).Once()

	listed, err := suite.service.ListAssets(ctx, suite.userID, false)
	suite.Require().NoError(err)
	summary, err := suite.dashboard.GetSummary(ctx, suite.userID)
	suite.Require().NoError(err)

	sum := decimal.Zero
	for _, v := range listed {
		sum = sum.Add(v.LatestMarketValue)
	}
	suite.True(summary.NetWorth.Equal(sum), "net worth %s, listed sum %s", summary.NetWorth, sum)
	suite.True(summary.NetWorth.Equal(decimal.NewFromInt(1800)))
	suite.True(summary.LiquidNetWorth.Equal(decimal.NewFromInt(300)))
	suite.Equal(2, summary.ActiveAssetCount)
	suite.Require().Len(summary.Allocation, 2)
	suite.Equal("stock", summary.Allocation[0].AssetType)
	suite.Len(summary.RecentTransactions, 3)
}

func (suite *AssetServiceTestSuite) TestGetAssetByID_Foreign() {
	ctx := context.Background()
	foreign := suite.stock
	foreign.UserID = uuid.NewString()
	suite.mockAssetRepo.On("FindAssetByID", ctx, foreign.AssetID).Return(&foreign, nil).Once()

	_, err := suite.service.GetAssetByID(ctx, suite.userID, foreign.AssetID)

	suite.Require().Error(err)
	suite.ErrorIs(err, ledger.ErrAssetNotFound)
	suite.Equal("Asset not found", apperrors.Message(err))
}

func (suite *AssetServiceTestSuite) TestCreateAsset_NoLedgerEntry() {
	ctx := context.Background()
	suite.mockAssetRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.Name == "House" && a.UserID == suite.userID && a.PurchaseDate != nil
	})).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, suite.userID, dto.CreateAssetRequest{
		Name:         " House ",
		AssetType:    "real_estate",
		PurchaseDate: onDate(2020, 5, 1),
		InitialValue: decPtr("250000"),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(asset.AssetID)
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_RejectsBlankName() {
	ctx := context.Background()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.stock.AssetID).Return(&suite.stock, nil).Once()

	_, err := suite.service.UpdateAsset(ctx, suite.userID, suite.stock.AssetID, dto.UpdateAssetRequest{Name: strPtr("  ")})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAssetRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestDeleteAsset_RemovesEntriesFirst() {
	ctx := context.Background()
	suite.mockAssetRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAssetRepo.On("Rollback", ctx, suite.tx).Return(nil).Once()
	suite.mockAssetRepo.On("FindAssetByIDForUpdate", ctx, suite.tx, suite.stock.AssetID).Return(&suite.stock, nil).Once()
	suite.mockTxnRepo.On("DeleteTransactionsByAssetInTx", ctx, suite.tx, suite.stock.AssetID).Return(int64(2), nil).Once()
	suite.mockAssetRepo.On("DeleteAssetInTx", ctx, suite.tx, suite.stock.AssetID).Return(nil).Once()
	suite.mockAssetRepo.On("Commit", ctx, suite.tx).Return(nil).Once()

	summary, err := suite.service.DeleteAsset(ctx, suite.userID, suite.stock.AssetID)

	suite.Require().NoError(err)
	suite.Equal("Asset 'AAPL' deleted successfully", summary.Message)
	suite.Equal(int64(2), summary.TotalTransactionsDeleted)
	suite.mockAssetRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestAssetService(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
