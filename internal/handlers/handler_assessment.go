package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assessmentHandler handles HTTP requests for fund assessments and reports.
type assessmentHandler struct {
	assessmentService portssvc.AssessmentSvcFacade
}

// newAssessmentHandler creates a new assessmentHandler.
func newAssessmentHandler(assessmentService portssvc.AssessmentSvcFacade) *assessmentHandler {
	return &assessmentHandler{
		assessmentService: assessmentService,
	}
}

func registerAssessmentRoutes(rg *gin.RouterGroup, assessmentService portssvc.AssessmentSvcFacade) {
	h := newAssessmentHandler(assessmentService)

	assessments := rg.Group("/assessments")
	{
		assessments.GET("/balance", h.balanceFor)
		assessments.GET("/report", h.reportFor)
		assessments.GET("/report/export", h.exportReport)
	}
}

func (h *assessmentHandler) balanceFor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceForParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for balanceFor", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	asOf := time.Time{}
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	assessment, err := h.assessmentService.BalanceFor(
		c.Request.Context(),
		domain.HierarchyLevel(params.OwnerLevel),
		params.OwnerEntityID,
		params.ContributionTypeID,
		asOf,
	)
	if err != nil {
		respondServiceError(c, logger, err, "compute fund balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

func (h *assessmentHandler) reportFor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	assessments, asOf, ok := h.runReport(c, logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ReportResponse{
		Assessments: dto.ToAssessmentResponses(assessments),
		AsOf:        asOf,
	})
}

// runReport binds the report query, resolves the viewer scope and computes
// the per-type assessments. Returns ok=false after responding on failure.
func (h *assessmentHandler) runReport(c *gin.Context, logger *slog.Logger) ([]domain.FundAssessment, time.Time, bool) {
	var params dto.ReportForParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for fund report", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return nil, time.Time{}, false
	}

	scope, err := params.ToEntityScope()
	if err != nil {
		respondServiceError(c, logger, err, "resolve scope")
		return nil, time.Time{}, false
	}

	asOf := time.Now().UTC()
	queryAsOf := time.Time{}
	if params.AsOf != nil {
		asOf = *params.AsOf
		queryAsOf = *params.AsOf
	}

	assessments, err := h.assessmentService.ReportFor(c.Request.Context(), scope, queryAsOf)
	if err != nil {
		respondServiceError(c, logger, err, "compute fund report")
		return nil, time.Time{}, false
	}

	return assessments, asOf, true
}

// exportReport streams the fund report as CSV for offline review.
func (h *assessmentHandler) exportReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	assessments, _, ok := h.runReport(c, logger)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="fund_report.csv"`)

	w := csv.NewWriter(c.Writer)
	header := []string{"owner_level", "owner_entity_id", "contribution_type_id", "opening_balance", "contributions", "expenditures", "transfers_in", "transfers_out", "remittances_sent", "remittances_received", "balance", "health"}
	if err := w.Write(header); err != nil {
		logger.Error("Failed to write CSV header", "error", err)
		return
	}
	for _, a := range assessments {
		record := []string{
			string(a.OwnerLevel),
			a.OwnerEntityID,
			a.ContributionTypeID,
			a.OpeningBalance.StringFixed(2),
			a.Contributions.StringFixed(2),
			a.Expenditures.StringFixed(2),
			a.TransfersIn.StringFixed(2),
			a.TransfersOut.StringFixed(2),
			a.RemittancesSent.StringFixed(2),
			a.RemittancesReceived.StringFixed(2),
			a.Balance.StringFixed(2),
			string(a.Health),
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
