package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/asset_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
	"github.com/SscSPs/asset_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assetHandler handles HTTP requests for assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

// registerAssetRoutes registers routes for assets.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.DELETE("/:assetID", h.deleteAsset)
	}
}

// createAsset godoc
// @Summary Create an asset
// @Description Creates an asset directly. No ledger entry is recorded; use POST /transactions with a create entry for a tracked asset.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List assets
// @Description Lists the caller's assets with their latest market value. Sold assets are hidden unless include_inactive is set.
// @Tags assets
// @Produce json
// @Param include_inactive query bool false "Include sold assets"
// @Success 200 {array} dto.AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	valuations, err := h.assetService.ListAssets(c.Request.Context(), userID, params.IncludeInactive)
	if err != nil {
		respondWithError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, dto.ToValuedAssetResponses(valuations))
}

// getAsset godoc
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /assets/{assetID} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	assetID, ok := uuidParam(c, "assetID", "Asset not found")
	if !ok {
		return
	}

	valuation, err := h.assetService.GetAssetByID(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err, "Failed to get asset")
		return
	}

	resp := dto.ToAssetResponse(&valuation.Asset)
	resp.LatestMarketValue = &valuation.LatestMarketValue
	c.JSON(http.StatusOK, resp)
}

// updateAsset godoc
// @Summary Update an asset
// @Description Edits asset fields directly. No ledger entry is recorded.
// @Tags assets
// @Accept json
// @Produce json
// @Param assetID path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to change"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /assets/{assetID} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	assetID, ok := uuidParam(c, "assetID", "Asset not found")
	if !ok {
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), userID, assetID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// deleteAsset godoc
// @Summary Delete an asset
// @Description Deletes the asset together with all of its ledger entries.
// @Tags assets
// @Produce json
// @Param assetID path string true "Asset ID"
// @Success 200 {object} dto.AssetDeleteResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /assets/{assetID} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	assetID, ok := uuidParam(c, "assetID", "Asset not found")
	if !ok {
		return
	}

	summary, err := h.assetService.DeleteAsset(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err, "Failed to delete asset")
		return
	}

	logger.Info("Asset deleted", slog.String("asset_id", assetID))
	c.JSON(http.StatusOK, dto.AssetDeleteResponse{
		Message:             summary.Message,
		AssetName:           summary.AssetName,
		TransactionsDeleted: summary.TotalTransactionsDeleted,
	})
}
