package handlers

import (
	"encoding/csv"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to the ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/entries", h.appendEntry)
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/entries/export", h.exportEntries)
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.POST("/entries/:entryID/reverse", h.reverseEntry)
		ledger.GET("/balance", h.queryBalance)
	}
}

func (h *ledgerHandler) appendEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AppendLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for appendEntry", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.AppendEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "append ledger entry")
		return
	}

	logger.Info("Ledger entry appended", "entry_id", entry.EntryID, "source_type", string(entry.SourceType))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	original, compensating, err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "reverse ledger entry")
		return
	}

	logger.Info("Ledger entry reversed", "entry_id", original.EntryID, "compensating_entry_id", compensating.EntryID)
	c.JSON(http.StatusOK, gin.H{
		"original":     dto.ToLedgerEntryResponse(original),
		"compensating": dto.ToLedgerEntryResponse(compensating),
	})
}

func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve ledger entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) queryBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for queryBalance", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	balance, err := h.ledgerService.QueryBalance(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "query balance")
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}
	resp := dto.BalanceResponse{
		OwnerLevel:    params.OwnerLevel,
		OwnerEntityID: params.OwnerEntityID,
		Balance:       balance,
		AsOf:          asOf,
	}
	if params.ContributionTypeID != nil {
		resp.ContributionTypeID = *params.ContributionTypeID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list ledger entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// exportEntries streams the audit listing as CSV. Pages through the service
// with the same token mechanism the JSON listing uses.
func (h *ledgerHandler) exportEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for exportEntries", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	params.Limit = 500
	params.NextToken = nil

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="ledger_entries.csv"`)

	w := csv.NewWriter(c.Writer)
	header := []string{"entry_id", "entry_type", "owner_level", "owner_entity_id", "amount", "source_type", "contribution_type_id", "entry_date", "reference", "status"}
	if err := w.Write(header); err != nil {
		logger.Error("Failed to write CSV header", "error", err)
		return
	}

	for {
		page, err := h.ledgerService.ListEntries(c.Request.Context(), params)
		if err != nil {
			logger.Error("Failed to list ledger entries for export", "error", err)
			return
		}
		for _, e := range page.Entries {
			record := []string{
				e.EntryID,
				e.EntryType,
				e.OwnerLevel,
				e.OwnerEntityID,
				e.Amount.StringFixed(2),
				e.SourceType,
				e.ContributionTypeID,
				e.EntryDate.Format("2006-01-02"),
				e.Reference,
				e.Status,
			}
			if err := w.Write(record); err != nil {
				logger.Error("Failed to write CSV record", "error", err)
				return
			}
		}
		if page.NextToken == nil {
			break
		}
		params.NextToken = page.NextToken
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to flush CSV export", "error", err)
	}
}
