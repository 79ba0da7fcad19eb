package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
	"github.com/SscSPs/asset_ledger_app/internal/middleware"
	"github.com/SscSPs/asset_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for ledger entries.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	posthogClient      *utils.PosthogClientWrapper
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, ph *utils.PosthogClientWrapper) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		posthogClient:      ph,
	}
}

// registerTransactionRoutes registers routes for ledger entries.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, ph *utils.PosthogClientWrapper) {
	h := newTransactionHandler(transactionService, ph)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/asset/:assetID", h.listAssetTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// recordTransaction godoc
// @Summary Record a ledger entry
// @Description Validates the entry, projects it onto the asset and stores both atomically. A create entry also creates the asset. A delete entry removes the asset and its whole history and answers with a deletion summary whose id is null.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Ledger entry"
// @Success 201 {object} dto.TransactionResponse
// @Success 200 {object} dto.LedgerDeletionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.transactionService.RecordTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to record transaction")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "transaction_recorded", map[string]any{
		"transaction_type": req.TransactionType,
	})

	if result.Deletion != nil {
		logger.Info("Asset deleted through ledger entry", slog.String("asset_id", result.Deletion.AssetID))
		c.JSON(http.StatusOK, dto.LedgerDeletionResponse{
			DeletionSummaryResponse: dto.ToDeletionSummaryResponse(result.Deletion),
		})
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", result.Transaction.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(result.Transaction))
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Lists the caller's entries newest first, one page at a time.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size (1-100, default 20)"
// @Param next_token query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// listAssetTransactions godoc
// @Summary List an asset's ledger entries
// @Description Lists the full history of one of the caller's assets, newest first.
// @Tags transactions
// @Produce json
// @Param assetID path string true "Asset ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions/asset/{assetID} [get]
func (h *transactionHandler) listAssetTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	assetID, ok := uuidParam(c, "assetID", "Asset not found")
	if !ok {
		return
	}

	txns, err := h.transactionService.ListAssetTransactions(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err, "Failed to list asset transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// getTransaction godoc
// @Summary Get a ledger entry
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(c, "transactionID", "Transaction not found")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit a ledger entry
// @Description Edits the cosmetic fields of an entry. The asset projection is not replayed.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(c, "transactionID", "Transaction not found")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, transactionID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Description Deletes one entry. Deleting an asset's create entry removes the asset and its whole history.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.DeletionSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(c, "transactionID", "Transaction not found")
	if !ok {
		return
	}

	summary, err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.Bool("asset_deleted", summary.AssetDeleted))
	c.JSON(http.StatusOK, dto.ToDeletionSummaryResponse(summary))
}
