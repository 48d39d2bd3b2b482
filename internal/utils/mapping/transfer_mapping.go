package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToModelTransfer converts a domain HierarchyTransfer to a model HierarchyTransfer
func ToModelTransfer(d domain.HierarchyTransfer) models.HierarchyTransfer {
	return models.HierarchyTransfer{
		TransferID:          d.TransferID,
		SourceLevel:         string(d.SourceLevel),
		SourceEntityID:      toNullable(d.SourceEntityID),
		DestinationLevel:    string(d.DestinationLevel),
		DestinationEntityID: toNullable(d.DestinationEntityID),
		Amount:              d.Amount,
		Date:                d.Date,
		Purpose:             d.Purpose,
		Reference:           d.Reference,
		CrossLineage:        d.CrossLineage,
		Status:              string(d.Status),
		ApproverID:          toNullable(d.ApproverID),
		ApprovedAt:          d.ApprovedAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model HierarchyTransfer to a domain HierarchyTransfer
func ToDomainTransfer(m models.HierarchyTransfer) domain.HierarchyTransfer {
	return domain.HierarchyTransfer{
		TransferID:          m.TransferID,
		SourceLevel:         domain.HierarchyLevel(m.SourceLevel),
		SourceEntityID:      fromNullable(m.SourceEntityID),
		DestinationLevel:    domain.HierarchyLevel(m.DestinationLevel),
		DestinationEntityID: fromNullable(m.DestinationEntityID),
		Amount:              m.Amount,
		Date:                m.Date,
		Purpose:             m.Purpose,
		Reference:           m.Reference,
		CrossLineage:        m.CrossLineage,
		Status:              domain.TransferStatus(m.Status),
		ApproverID:          fromNullable(m.ApproverID),
		ApprovedAt:          m.ApprovedAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransferSlice converts a slice of model HierarchyTransfers to a slice of domain HierarchyTransfers
func ToDomainTransferSlice(ms []models.HierarchyTransfer) []domain.HierarchyTransfer {
	ds := make([]domain.HierarchyTransfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
