package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance{
		OpeningBalanceID:   d.OpeningBalanceID,
		Level:              string(d.Level),
		BranchID:           toNullable(d.BranchID),
		Amount:             d.Amount,
		ContributionTypeID: d.ContributionTypeID,
		Date:               d.Date,
		Description:        d.Description,
		Status:             string(d.Status),
		ApproverID:         toNullable(d.ApproverID),
		ApprovedAt:         d.ApprovedAt,
		RejectionReason:    toNullable(d.RejectionReason),
		LedgerEntryID:      toNullable(d.LedgerEntryID),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance{
		OpeningBalanceID:   m.OpeningBalanceID,
		Level:              domain.HierarchyLevel(m.Level),
		BranchID:           fromNullable(m.BranchID),
		Amount:             m.Amount,
		ContributionTypeID: m.ContributionTypeID,
		Date:               m.Date,
		Description:        m.Description,
		Status:             domain.OpeningBalanceStatus(m.Status),
		ApproverID:         fromNullable(m.ApproverID),
		ApprovedAt:         m.ApprovedAt,
		RejectionReason:    fromNullable(m.RejectionReason),
		LedgerEntryID:      fromNullable(m.LedgerEntryID),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningBalanceSlice converts a slice of model OpeningBalances to a slice of domain OpeningBalances
func ToDomainOpeningBalanceSlice(ms []models.OpeningBalance) []domain.OpeningBalance {
	ds := make([]domain.OpeningBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpeningBalance(m)
	}
	return ds
}
