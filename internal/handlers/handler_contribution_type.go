package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// contributionTypeHandler handles HTTP requests related to contribution types.
type contributionTypeHandler struct {
	ctService portssvc.ContributionTypeSvcFacade
}

// newContributionTypeHandler creates a new contributionTypeHandler.
func newContributionTypeHandler(ctService portssvc.ContributionTypeSvcFacade) *contributionTypeHandler {
	return &contributionTypeHandler{
		ctService: ctService,
	}
}

func registerContributionTypeRoutes(rg *gin.RouterGroup, ctService portssvc.ContributionTypeSvcFacade) {
	h := newContributionTypeHandler(ctService)

	types := rg.Group("/contribution-types")
	{
		types.POST("", h.createContributionType)
		types.GET("", h.listContributionTypes)
		types.GET("/visible", h.listVisibleContributionTypes)
		types.GET("/:typeID", h.getContributionType)
		types.GET("/:typeID/allocate", h.allocateAmount)
		types.PUT("/:typeID", h.updateContributionType)
		types.DELETE("/:typeID", h.deactivateContributionType)
	}
}

func (h *contributionTypeHandler) createContributionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContributionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContributionType", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	ct, err := h.ctService.CreateContributionType(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "create contribution type")
		return
	}

	logger.Info("Contribution type created", "contribution_type_id", ct.ContributionTypeID, "code", ct.Code)
	c.JSON(http.StatusCreated, dto.ToContributionTypeResponse(ct))
}

func (h *contributionTypeHandler) updateContributionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	var req dto.UpdateContributionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateContributionType", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	ct, err := h.ctService.UpdateContributionType(c.Request.Context(), typeID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "update contribution type")
		return
	}

	c.JSON(http.StatusOK, dto.ToContributionTypeResponse(ct))
}

func (h *contributionTypeHandler) deactivateContributionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	if err := h.ctService.DeactivateContributionType(c.Request.Context(), typeID, actor); err != nil {
		respondServiceError(c, logger, err, "deactivate contribution type")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *contributionTypeHandler) getContributionType(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	ct, err := h.ctService.GetContributionTypeByID(c.Request.Context(), typeID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve contribution type")
		return
	}

	c.JSON(http.StatusOK, dto.ToContributionTypeResponse(ct))
}

// allocateAmount previews how an amount would split across the levels per
// the type's percentages.
func (h *contributionTypeHandler) allocateAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	typeID := c.Param("typeID")

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		logger.Warn("Invalid amount for allocateAmount", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "A decimal amount query parameter is required"})
		return
	}

	split, err := h.ctService.Allocate(c.Request.Context(), typeID, amount)
	if err != nil {
		respondServiceError(c, logger, err, "allocate amount")
		return
	}

	c.JSON(http.StatusOK, dto.AllocationResponse{
		ContributionTypeID: typeID,
		Amount:             split.Total(),
		MissionShare:       split.Mission,
		AreaShare:          split.Area,
		DistrictShare:      split.District,
		BranchShare:        split.Branch,
	})
}

func (h *contributionTypeHandler) listContributionTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
	cts, err := h.ctService.ListContributionTypes(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "list contribution types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contributionTypes": dto.ToContributionTypeResponses(cts)})
}

// listVisibleContributionTypes resolves the types the acting user's scope may
// see, rather than the full registry.
func (h *contributionTypeHandler) listVisibleContributionTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportForParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listVisibleContributionTypes", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	scope, err := params.ToEntityScope()
	if err != nil {
		respondServiceError(c, logger, err, "resolve scope")
		return
	}

	cts, err := h.ctService.ResolveVisible(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, logger, err, "resolve visible contribution types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contributionTypes": dto.ToContributionTypeResponses(cts)})
}
