package dto

import (
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContributionTypeRequest defines the payload for registering a fund type.
type CreateContributionTypeRequest struct {
	Name          string          `json:"name" binding:"required"`
	Code          string          `json:"code" binding:"required"`
	Scope         string          `json:"scope" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	OwnerEntityID string          `json:"ownerEntityID"` // Required iff scope != MISSION
	MissionPct    decimal.Decimal `json:"missionPct"`
	AreaPct       decimal.Decimal `json:"areaPct"`
	DistrictPct   decimal.Decimal `json:"districtPct"`
	BranchPct     decimal.Decimal `json:"branchPct"`
}

// UpdateContributionTypeRequest defines the editable fields of a fund type.
// Percentages travel together; a partial percentage edit cannot keep the
// sum-to-100 invariant checkable.
type UpdateContributionTypeRequest struct {
	Name        *string          `json:"name,omitempty"`
	MissionPct  *decimal.Decimal `json:"missionPct,omitempty"`
	AreaPct     *decimal.Decimal `json:"areaPct,omitempty"`
	DistrictPct *decimal.Decimal `json:"districtPct,omitempty"`
	BranchPct   *decimal.Decimal `json:"branchPct,omitempty"`
}

// ContributionTypeResponse defines the data returned for a fund type.
type ContributionTypeResponse struct {
	ContributionTypeID string          `json:"contributionTypeID"`
	Name               string          `json:"name"`
	Code               string          `json:"code"`
	Scope              string          `json:"scope"`
	OwnerEntityID      string          `json:"ownerEntityID,omitempty"`
	MissionPct         decimal.Decimal `json:"missionPct"`
	AreaPct            decimal.Decimal `json:"areaPct"`
	DistrictPct        decimal.Decimal `json:"districtPct"`
	BranchPct          decimal.Decimal `json:"branchPct"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToContributionTypeResponse converts a domain.ContributionType to its response DTO.
func ToContributionTypeResponse(ct *domain.ContributionType) ContributionTypeResponse {
	return ContributionTypeResponse{
		ContributionTypeID: ct.ContributionTypeID,
		Name:               ct.Name,
		Code:               ct.Code,
		Scope:              string(ct.Scope),
		OwnerEntityID:      ct.OwnerEntityID,
		MissionPct:         ct.MissionPct,
		AreaPct:            ct.AreaPct,
		DistrictPct:        ct.DistrictPct,
		BranchPct:          ct.BranchPct,
		IsActive:           ct.IsActive,
		CreatedAt:          ct.CreatedAt,
	}
}

// AllocationResponse breaks an amount into the per-level shares of a fund
// type's percentage split. The shares always re-sum to the amount exactly.
type AllocationResponse struct {
	ContributionTypeID string          `json:"contributionTypeID"`
	Amount             decimal.Decimal `json:"amount"`
	MissionShare       decimal.Decimal `json:"missionShare"`
	AreaShare          decimal.Decimal `json:"areaShare"`
	DistrictShare      decimal.Decimal `json:"districtShare"`
	BranchShare        decimal.Decimal `json:"branchShare"`
}

// ToContributionTypeResponses converts a slice of domain types to response DTOs.
func ToContributionTypeResponses(cts []domain.ContributionType) []ContributionTypeResponse {
	responses := make([]ContributionTypeResponse, len(cts))
	for i := range cts {
		responses[i] = ToContributionTypeResponse(&cts[i])
	}
	return responses
}
