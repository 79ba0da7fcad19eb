package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/core/ledger"
	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
	"github.com/SscSPs/asset_ledger_app/internal/handlers"
	"github.com/SscSPs/asset_ledger_app/internal/platform/config"
	"github.com/SscSPs/asset_ledger_app/internal/utils"
)

const testJWTSecret = "test-secret"

type HandlersTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockTxnService *MockTransactionService
	mockAssetSvc   *MockAssetService
	mockDashboard  *MockDashboardService
	userID         string
	token          string
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.mockTxnService = new(MockTransactionService)
	suite.mockAssetSvc = new(MockAssetService)
	suite.mockDashboard = new(MockDashboardService)
	suite.userID = uuid.NewString()

	token, err := utils.GenerateJWT(suite.userID, testJWTSecret, time.Hour, "", "")
	suite.Require().NoError(err)
	suite.token = token

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Asset:       suite.mockAssetSvc,
		Transaction: suite.mockTxnService,
		Dashboard:   suite.mockDashboard,
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services, nil, nil)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.mockTxnService.AssertExpectations(suite.T())
	suite.mockAssetSvc.AssertExpectations(suite.T())
	suite.mockDashboard.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func ofType(t string) any {
	return mock.MatchedBy(func(req dto.CreateTransactionRequest) bool { return req.TransactionType == t })
}

func (suite *HandlersTestSuite) TestRecordTransaction_Create() {
	assetID := uuid.NewString()
	value := decimal.NewFromInt(1000)
	txn := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AssetID:         assetID,
		TransactionType: domain.TxCreate,
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		AssetName:       "AAPL",
		CurrentValue:    &value,
	}
	suite.mockTxnService.On("RecordTransaction", mock.Anything, suite.userID, ofType("create")).
		Return(&domain.LedgerResult{Transaction: txn}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transaction_type":  "create",
		"transaction_date":  "2024-03-01",
		"asset_name":        "AAPL",
		"asset_type":        "stock",
		"acquisition_value": 1000,
		"quantity":          10,
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(txn.TransactionID, body["id"])
	suite.Equal(assetID, body["asset_id"])
	suite.Equal("2024-03-01", body["transaction_date"])
}

func (suite *HandlersTestSuite) TestRecordTransaction_DeleteReturnsSummary() {
	summary := &domain.DeletionSummary{
		Message:                  "Asset 'AAPL' and all 3 related transactions deleted",
		TransactionType:          domain.TxDelete,
		AssetDeleted:             true,
		AssetName:                "AAPL",
		TotalTransactionsDeleted: 3,
	}
	suite.mockTxnService.On("RecordTransaction", mock.Anything, suite.userID, ofType("delete")).
		Return(&domain.LedgerResult{Deletion: summary}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transaction_type": "delete",
		"transaction_date": "2024-03-01",
		"asset_id":         uuid.NewString(),
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	id, present := body["id"]
	suite.True(present)
	suite.Nil(id)
	suite.Equal(true, body["asset_deleted"])
	suite.Equal("delete", body["transaction_type"])
	suite.Equal(float64(3), body["total_transactions_deleted"])
	suite.NotContains(body, "transactions_deleted")
}

func (suite *HandlersTestSuite) TestRecordTransaction_BindingFailures() {
	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing type", map[string]any{"transaction_date": "2024-03-01"}},
		{"missing date", map[string]any{"transaction_type": "purchase"}},
		{"blank type", map[string]any{"transaction_type": "   ", "transaction_date": "2024-03-01"}},
		{"overlong type", map[string]any{"transaction_type": strings.Repeat("x", 51), "transaction_date": "2024-03-01"}},
		{"malformed asset id", map[string]any{"transaction_type": "purchase", "transaction_date": "2024-03-01", "asset_id": "abc"}},
		{"malformed date", map[string]any{"transaction_type": "purchase", "transaction_date": "March 1st"}},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/transactions", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	suite.mockTxnService.AssertNotCalled(suite.T(), "RecordTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestRecordTransaction_UnrecognizedTypesAreAccepted() {
	assetID := uuid.NewString()
	for _, tag := range []string{"Dividend", "value-update", "PURCHASE"} {
		suite.Run(tag, func() {
			txn := &domain.Transaction{
				TransactionID:   uuid.NewString(),
				UserID:          suite.userID,
				AssetID:         assetID,
				TransactionType: domain.TransactionType(tag),
				TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			}
			suite.mockTxnService.On("RecordTransaction", mock.Anything, suite.userID, ofType(tag)).
				Return(&domain.LedgerResult{Transaction: txn}, nil).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
				"transaction_type": tag,
				"transaction_date": "2024-03-01",
				"asset_id":         assetID,
			})

			suite.Equal(http.StatusCreated, w.Code, w.Body.String())
			suite.Equal(tag, suite.decode(w)["transaction_type"])
		})
	}
	suite.mockTxnService.AssertNumberOfCalls(suite.T(), "RecordTransaction", 3)
}

func (suite *HandlersTestSuite) TestRecordTransaction_ErrorMapping() {
	cases := []struct {
		name       string
		txType     string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", "purchase", apperrors.Validation("amount is required for purchase"), http.StatusBadRequest, "amount is required for purchase"},
		{"unknown asset", "sale", ledger.ErrAssetNotFound, http.StatusNotFound, "Asset not found"},
		{"persistence", "cash_deposit", errors.New("connection reset"), http.StatusInternalServerError, "Failed to record transaction"},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockTxnService.On("RecordTransaction", mock.Anything, suite.userID, ofType(tc.txType)).
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
				"transaction_type": tc.txType,
				"transaction_date": "2024-03-01",
				"asset_id":         uuid.NewString(),
			})

			suite.Equal(tc.wantStatus, w.Code)
			suite.Equal(tc.wantError, suite.decode(w)["error"])
		})
	}
}

func (suite *HandlersTestSuite) TestRequiresBearerToken() {
	suite.token = ""
	w := suite.do(http.MethodGet, "/api/v1/transactions", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	forged, err := utils.GenerateJWT(suite.userID, "some-other-secret", time.Hour, "", "")
	suite.Require().NoError(err)
	suite.token = forged
	w = suite.do(http.MethodGet, "/api/v1/transactions", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestDeleteTransaction_CreateCascade() {
	id := uuid.NewString()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, id).Return(&domain.DeletionSummary{
		Message:                  "Create Asset transaction deleted - removed asset 'AAPL' and all 4 related transactions",
		TransactionType:          domain.TxCreate,
		AssetDeleted:             true,
		AssetName:                "AAPL",
		TotalTransactionsDeleted: 4,
	}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("create", body["transaction_type"])
	suite.Equal(true, body["asset_deleted"])
	suite.Equal(float64(4), body["total_transactions_deleted"])
}

func (suite *HandlersTestSuite) TestDeleteTransaction_SingleRow() {
	id := uuid.NewString()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, id).Return(&domain.DeletionSummary{
		Message:                  "Transaction 'purchase' for asset 'AAPL' deleted successfully",
		TransactionType:          domain.TxPurchase,
		TotalTransactionsDeleted: 1,
	}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal(false, body["asset_deleted"])
	suite.Equal(float64(1), body["transactions_deleted"])
	suite.NotContains(body, "total_transactions_deleted")
}

func (suite *HandlersTestSuite) TestDeleteTransaction_NotFound() {
	id := uuid.NewString()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, suite.userID, id).
		Return(nil, apperrors.NotFound("Transaction not found")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/"+id, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Transaction not found", suite.decode(w)["error"])

	w = suite.do(http.MethodDelete, "/api/v1/transactions/not-a-uuid", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestListTransactions_Pagination() {
	params := dto.ListTransactionsParams{Limit: 2, NextToken: "abc"}
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), TransactionType: domain.TxSale},
		{TransactionID: uuid.NewString(), TransactionType: domain.TxPurchase},
	}
	suite.mockTxnService.On("ListTransactions", mock.Anything, suite.userID, params).Return(txns, "def", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=2&next_token=abc", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Len(body["transactions"], 2)
	suite.Equal("def", body["next_token"])

	w = suite.do(http.MethodGet, "/api/v1/transactions?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestUpdateTransaction() {
	id := uuid.NewString()
	notes := "moved to broker B"
	suite.mockTxnService.On("UpdateTransaction", mock.Anything, suite.userID, id, mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Notes != nil && *req.Notes == notes
	})).Return(&domain.Transaction{TransactionID: id, Notes: notes, TransactionType: domain.TxPurchase}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/"+id, map[string]any{"notes": notes})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(notes, suite.decode(w)["notes"])
}

func (suite *HandlersTestSuite) TestListAssets_IncludesLatestMarketValue() {
	asset := domain.Asset{AssetID: uuid.NewString(), UserID: suite.userID, Name: "AAPL", AssetType: "stock"}
	suite.mockAssetSvc.On("ListAssets", mock.Anything, suite.userID, true).Return([]ledger.Valuation{
		{Asset: asset, LatestMarketValue: decimal.NewFromInt(1500)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assets?include_inactive=true", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var body []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("1500", body[0]["latest_market_value"])
}

func (suite *HandlersTestSuite) TestDeleteAsset() {
	id := uuid.NewString()
	suite.mockAssetSvc.On("DeleteAsset", mock.Anything, suite.userID, id).Return(&domain.DeletionSummary{
		Message:                  "Asset 'AAPL' deleted successfully",
		AssetDeleted:             true,
		AssetName:                "AAPL",
		TotalTransactionsDeleted: 2,
	}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/assets/"+id, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("AAPL", body["asset_name"])
	suite.Equal(float64(2), body["transactions_deleted"])
}

func (suite *HandlersTestSuite) TestDashboardSummary() {
	suite.mockDashboard.On("GetSummary", mock.Anything, suite.userID).Return(&domain.DashboardSummary{
		NetWorth:       decimal.NewFromInt(1800),
		LiquidNetWorth: decimal.NewFromInt(300),
		Allocation: []domain.AllocationSlice{
			{AssetType: "stock", Value: decimal.NewFromInt(1500)},
			{AssetType: "cash", Value: decimal.NewFromInt(300)},
		},
		RecentTransactions: []domain.Transaction{},
		ActiveAssetCount:   2,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard/summary", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("1800", body["net_worth"])
	suite.Equal(float64(2), body["asset_count"])
	suite.Len(body["asset_allocation"], 2)
}

func (suite *HandlersTestSuite) TestHealth() {
	suite.token = ""
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
