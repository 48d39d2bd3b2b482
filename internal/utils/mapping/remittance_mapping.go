package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToModelRemittance converts a domain HierarchyRemittance to a model HierarchyRemittance
func ToModelRemittance(d domain.HierarchyRemittance) models.HierarchyRemittance {
	return models.HierarchyRemittance{
		RemittanceID:      d.RemittanceID,
		BranchID:          d.BranchID,
		DestinationLevel:  string(d.DestinationLevel),
		DestinationID:     d.DestinationID,
		Month:             d.Month,
		Year:              d.Year,
		AmountDue:         d.AmountDue,
		AmountSent:        d.AmountSent,
		PaymentDate:       d.PaymentDate,
		PaymentMethod:     toNullable(d.PaymentMethod),
		PaymentReference:  toNullable(d.PaymentReference),
		PaymentProofURL:   toNullable(d.PaymentProofURL),
		Status:            string(d.Status),
		VerifierID:        toNullable(d.VerifierID),
		VerifiedAt:        d.VerifiedAt,
		SentLedgerEntryID: toNullable(d.SentLedgerEntryID),
		RecvLedgerEntryID: toNullable(d.RecvLedgerEntryID),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRemittance converts a model HierarchyRemittance to a domain HierarchyRemittance
func ToDomainRemittance(m models.HierarchyRemittance) domain.HierarchyRemittance {
	return domain.HierarchyRemittance{
		RemittanceID:      m.RemittanceID,
		BranchID:          m.BranchID,
		DestinationLevel:  domain.HierarchyLevel(m.DestinationLevel),
		DestinationID:     m.DestinationID,
		Month:             m.Month,
		Year:              m.Year,
		AmountDue:         m.AmountDue,
		AmountSent:        m.AmountSent,
		PaymentDate:       m.PaymentDate,
		PaymentMethod:     fromNullable(m.PaymentMethod),
		PaymentReference:  fromNullable(m.PaymentReference),
		PaymentProofURL:   fromNullable(m.PaymentProofURL),
		Status:            domain.RemittanceStatus(m.Status),
		VerifierID:        fromNullable(m.VerifierID),
		VerifiedAt:        m.VerifiedAt,
		SentLedgerEntryID: fromNullable(m.SentLedgerEntryID),
		RecvLedgerEntryID: fromNullable(m.RecvLedgerEntryID),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRemittanceSlice converts a slice of model HierarchyRemittances to a slice of domain HierarchyRemittances
func ToDomainRemittanceSlice(ms []models.HierarchyRemittance) []domain.HierarchyRemittance {
	ds := make([]domain.HierarchyRemittance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRemittance(m)
	}
	return ds
}
