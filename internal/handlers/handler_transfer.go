package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests related to hierarchy transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: transferService,
	}
}

func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.proposeTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:transferID", h.getTransfer)
		transfers.POST("/:transferID/approve", h.approveTransfer)
		transfers.POST("/:transferID/cancel", h.cancelTransfer)
	}
}

func (h *transferHandler) proposeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProposeTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for proposeTransfer", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	transfer, err := h.transferService.ProposeTransfer(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "propose transfer")
		return
	}

	logger.Info("Transfer proposed", "transfer_id", transfer.TransferID, "cross_lineage", transfer.CrossLineage)
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) approveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	transfer, err := h.transferService.ApproveTransfer(c.Request.Context(), transferID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "approve transfer")
		return
	}

	logger.Info("Transfer approved", "transfer_id", transfer.TransferID)
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) cancelTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	transfer, err := h.transferService.CancelTransfer(c.Request.Context(), transferID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "cancel transfer")
		return
	}

	logger.Info("Transfer cancelled", "transfer_id", transfer.TransferID)
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("transferID")

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransfers", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	transfers, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list transfers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transfers": dto.ToTransferResponses(transfers)})
}
