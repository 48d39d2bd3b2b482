package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToModelContributionType converts a domain ContributionType to a model ContributionType
func ToModelContributionType(d domain.ContributionType) models.ContributionType {
	return models.ContributionType{
		ContributionTypeID: d.ContributionTypeID,
		Name:               d.Name,
		Code:               d.Code,
		Scope:              string(d.Scope),
		OwnerEntityID:      d.OwnerEntityID,
		MissionPct:         d.MissionPct,
		AreaPct:            d.AreaPct,
		DistrictPct:        d.DistrictPct,
		BranchPct:          d.BranchPct,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContributionType converts a model ContributionType to a domain ContributionType
func ToDomainContributionType(m models.ContributionType) domain.ContributionType {
	return domain.ContributionType{
		ContributionTypeID: m.ContributionTypeID,
		Name:               m.Name,
		Code:               m.Code,
		Scope:              domain.HierarchyLevel(m.Scope),
		OwnerEntityID:      m.OwnerEntityID,
		MissionPct:         m.MissionPct,
		AreaPct:            m.AreaPct,
		DistrictPct:        m.DistrictPct,
		BranchPct:          m.BranchPct,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContributionTypeSlice converts a slice of model ContributionTypes to a slice of domain ContributionTypes
func ToDomainContributionTypeSlice(ms []models.ContributionType) []domain.ContributionType {
	ds := make([]domain.ContributionType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContributionType(m)
	}
	return ds
}
