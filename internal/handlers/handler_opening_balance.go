package handlers

import (
	"encoding/csv"
	"net/http"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// openingBalanceHandler handles HTTP requests related to opening balances.
type openingBalanceHandler struct {
	obService portssvc.OpeningBalanceSvcFacade
}

// newOpeningBalanceHandler creates a new openingBalanceHandler.
func newOpeningBalanceHandler(obService portssvc.OpeningBalanceSvcFacade) *openingBalanceHandler {
	return &openingBalanceHandler{
		obService: obService,
	}
}

// RegisterOpeningBalanceRoutes wires the opening balance endpoints onto the
// given router group. Exported so tests can mount the routes directly.
func RegisterOpeningBalanceRoutes(rg *gin.RouterGroup, obService portssvc.OpeningBalanceSvcFacade) {
	h := newOpeningBalanceHandler(obService)

	obs := rg.Group("/opening-balances")
	{
		obs.POST("", h.submitOpeningBalance)
		obs.GET("", h.listOpeningBalances)
		obs.GET("/export", h.exportOpeningBalances)
		obs.GET("/:openingBalanceID", h.getOpeningBalance)
		obs.POST("/:openingBalanceID/approve", h.approveOpeningBalance)
		obs.POST("/:openingBalanceID/reject", h.rejectOpeningBalance)
	}
}

func (h *openingBalanceHandler) submitOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitOpeningBalance", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	ob, err := h.obService.SubmitOpeningBalance(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "submit opening balance")
		return
	}

	logger.Info("Opening balance submitted", "opening_balance_id", ob.OpeningBalanceID)
	c.JSON(http.StatusCreated, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) approveOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	openingBalanceID := c.Param("openingBalanceID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	ob, err := h.obService.ApproveOpeningBalance(c.Request.Context(), openingBalanceID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "approve opening balance")
		return
	}

	logger.Info("Opening balance approved", "opening_balance_id", ob.OpeningBalanceID, "ledger_entry_id", ob.LedgerEntryID)
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) rejectOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	openingBalanceID := c.Param("openingBalanceID")

	var req dto.RejectOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for rejectOpeningBalance", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	ob, err := h.obService.RejectOpeningBalance(c.Request.Context(), openingBalanceID, req.Reason, actor)
	if err != nil {
		respondServiceError(c, logger, err, "reject opening balance")
		return
	}

	logger.Info("Opening balance rejected", "opening_balance_id", ob.OpeningBalanceID)
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) getOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	openingBalanceID := c.Param("openingBalanceID")

	ob, err := h.obService.GetOpeningBalanceByID(c.Request.Context(), openingBalanceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve opening balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponse(ob))
}

func (h *openingBalanceHandler) listOpeningBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOpeningBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listOpeningBalances", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	obs, err := h.obService.ListOpeningBalances(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list opening balances")
		return
	}

	c.JSON(http.StatusOK, gin.H{"openingBalances": dto.ToOpeningBalanceResponses(obs)})
}

// exportOpeningBalances streams the filtered listing as CSV.
func (h *openingBalanceHandler) exportOpeningBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOpeningBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for exportOpeningBalances", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	records, err := h.obService.ListOpeningBalances(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "export opening balances")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="opening_balances.csv"`)

	w := csv.NewWriter(c.Writer)
	header := []string{"level", "branch_id", "contribution_type_id", "amount", "date", "status", "description"}
	if err := w.Write(header); err != nil {
		logger.Error("Failed to write CSV header", "error", err)
		return
	}
	for i := range records {
		ob := &records[i]
		record := []string{
			string(ob.Level),
			ob.BranchID,
			ob.ContributionTypeID,
			ob.Amount.StringFixed(2),
			ob.Date.Format("2006-01-02"),
			string(ob.Status),
			ob.Description,
		}
		if err := w.Write(record); err != nil {
			logger.Error("Failed to write CSV record", "error", err)
			return
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to flush CSV export", "error", err)
	}
}
