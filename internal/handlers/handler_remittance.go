package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// remittanceHandler handles HTTP requests related to hierarchy remittances.
type remittanceHandler struct {
	remittanceService portssvc.RemittanceSvcFacade
}

// newRemittanceHandler creates a new remittanceHandler.
func newRemittanceHandler(remittanceService portssvc.RemittanceSvcFacade) *remittanceHandler {
	return &remittanceHandler{
		remittanceService: remittanceService,
	}
}

func registerRemittanceRoutes(rg *gin.RouterGroup, remittanceService portssvc.RemittanceSvcFacade) {
	h := newRemittanceHandler(remittanceService)

	remittances := rg.Group("/remittances")
	{
		remittances.POST("", h.scheduleRemittance)
		remittances.GET("", h.listRemittances)
		remittances.POST("/mark-overdue", h.markOverdue)
		remittances.GET("/:remittanceID", h.getRemittance)
		remittances.POST("/:remittanceID/payments", h.recordPayment)
		remittances.POST("/:remittanceID/verify", h.verifyRemittance)
	}
}

func (h *remittanceHandler) scheduleRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ScheduleRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for scheduleRemittance", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.ScheduleRemittance(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "schedule remittance")
		return
	}

	logger.Info("Remittance scheduled", "remittance_id", remittance.RemittanceID, "month", remittance.Month, "year", remittance.Year)
	c.JSON(http.StatusCreated, dto.ToRemittanceResponse(remittance))
}

func (h *remittanceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("remittanceID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.RecordPayment(c.Request.Context(), remittanceID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "record remittance payment")
		return
	}

	logger.Info("Remittance payment recorded", "remittance_id", remittance.RemittanceID, "amount_sent", remittance.AmountSent.String())
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

func (h *remittanceHandler) verifyRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("remittanceID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.VerifyRemittance(c.Request.Context(), remittanceID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "verify remittance")
		return
	}

	logger.Info("Remittance verified", "remittance_id", remittance.RemittanceID)
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// markOverdue runs the overdue sweep on demand. The scheduler calls the same
// service method; exposing it lets an admin trigger a sweep without waiting.
func (h *remittanceHandler) markOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	count, err := h.remittanceService.MarkOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "mark overdue remittances")
		return
	}

	c.JSON(http.StatusOK, gin.H{"markedOverdue": count})
}

func (h *remittanceHandler) getRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	remittanceID := c.Param("remittanceID")

	remittance, err := h.remittanceService.GetRemittanceByID(c.Request.Context(), remittanceID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve remittance")
		return
	}

	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

func (h *remittanceHandler) listRemittances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRemittancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listRemittances", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	remittances, err := h.remittanceService.ListRemittances(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list remittances")
		return
	}

	c.JSON(http.StatusOK, gin.H{"remittances": dto.ToRemittanceResponses(remittances)})
}
