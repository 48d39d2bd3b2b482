package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceForParams defines the query for a single fund assessment.
type BalanceForParams struct {
	OwnerLevel         string     `form:"ownerLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	OwnerEntityID      string     `form:"ownerEntityID"`
	ContributionTypeID string     `form:"contributionTypeID" binding:"required"`
	AsOf               *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ReportForParams defines the query for a full fund report.
type ReportForParams struct {
	Level      string     `form:"level" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	AreaID     string     `form:"areaID"`
	DistrictID string     `form:"districtID"`
	BranchID   string     `form:"branchID"`
	AsOf       *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ToEntityScope converts the query into a viewer scope. The scope's own
// entity must be present for non-Mission levels; a District or Branch scope
// also carries its ancestors so visibility can be resolved.
func (p ReportForParams) ToEntityScope() (domain.EntityScope, error) {
	scope := domain.EntityScope{
		Level:      domain.HierarchyLevel(p.Level),
		AreaID:     p.AreaID,
		DistrictID: p.DistrictID,
		BranchID:   p.BranchID,
	}
	if scope.Level != domain.LevelMission && scope.OwnEntityID() == "" {
		return domain.EntityScope{}, fmt.Errorf("%w: %s scope requires its entity ID", apperrors.ErrValidation, p.Level)
	}
	return scope, nil
}

// AssessmentResponse is the audit breakdown of one fund balance.
type AssessmentResponse struct {
	OwnerLevel          string          `json:"ownerLevel"`
	OwnerEntityID       string          `json:"ownerEntityID,omitempty"`
	ContributionTypeID  string          `json:"contributionTypeID"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	Contributions       decimal.Decimal `json:"contributions"`
	Expenditures        decimal.Decimal `json:"expenditures"`
	TransfersIn         decimal.Decimal `json:"transfersIn"`
	TransfersOut        decimal.Decimal `json:"transfersOut"`
	RemittancesSent     decimal.Decimal `json:"remittancesSent"`
	RemittancesReceived decimal.Decimal `json:"remittancesReceived"`
	Balance             decimal.Decimal `json:"balance"`
	Health              string          `json:"health"`
}

// ReportResponse wraps the per-type assessments for one entity scope.
type ReportResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
	AsOf        time.Time            `json:"asOf"`
}

// ToAssessmentResponse converts a domain.FundAssessment to its response DTO.
func ToAssessmentResponse(a *domain.FundAssessment) AssessmentResponse {
	return AssessmentResponse{
		OwnerLevel:          string(a.OwnerLevel),
		OwnerEntityID:       a.OwnerEntityID,
		ContributionTypeID:  a.ContributionTypeID,
		OpeningBalance:      a.OpeningBalance,
		Contributions:       a.Contributions,
		Expenditures:        a.Expenditures,
		TransfersIn:         a.TransfersIn,
		TransfersOut:        a.TransfersOut,
		RemittancesSent:     a.RemittancesSent,
		RemittancesReceived: a.RemittancesReceived,
		Balance:             a.Balance,
		Health:              string(a.Health),
	}
}

// ToAssessmentResponses converts a slice of assessments to response DTOs.
func ToAssessmentResponses(as []domain.FundAssessment) []AssessmentResponse {
	responses := make([]AssessmentResponse, len(as))
	for i := range as {
		responses[i] = ToAssessmentResponse(&as[i])
	}
	return responses
}
