package models

import "github.com/shopspring/decimal"

// ContributionType represents a row of the contribution_types table.
type ContributionType struct {
	ContributionTypeID string          `json:"contributionTypeID"` // Primary Key (UUID)
	Name               string          `json:"name"`
	Code               string          `json:"code"` // Unique
	Scope              string          `json:"scope"`
	OwnerEntityID      string          `json:"ownerEntityID"` // Empty for mission scope
	MissionPct         decimal.Decimal `json:"missionPct"`
	AreaPct            decimal.Decimal `json:"areaPct"`
	DistrictPct        decimal.Decimal `json:"districtPct"`
	BranchPct          decimal.Decimal `json:"branchPct"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}
