package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToDomainArea converts a model Area to a domain Area
func ToDomainArea(m models.Area) domain.Area {
	return domain.Area{
		AreaID:      m.AreaID,
		Name:        m.Name,
		Code:        m.Code,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDistrict converts a model District to a domain District
func ToDomainDistrict(m models.District) domain.District {
	return domain.District{
		DistrictID:  m.DistrictID,
		AreaID:      m.AreaID,
		Name:        m.Name,
		Code:        m.Code,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		DistrictID:  m.DistrictID,
		AreaID:      m.AreaID,
		Name:        m.Name,
		Code:        m.Code,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
