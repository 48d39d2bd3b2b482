package mapping

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:            d.EntryID,
		EntryType:          string(d.EntryType),
		OwnerLevel:         string(d.OwnerLevel),
		OwnerEntityID:      toNullable(d.OwnerEntityID),
		Amount:             d.Amount,
		SourceType:         string(d.SourceType),
		ContributionTypeID: toNullable(d.ContributionTypeID),
		EntryDate:          d.EntryDate,
		Reference:          d.Reference,
		Status:             models.EntryStatus(d.Status),
		ReversedByEntryID:  toNullable(d.ReversedByEntryID),
		ReversesEntryID:    toNullable(d.ReversesEntryID),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:            m.EntryID,
		EntryType:          domain.EntryType(m.EntryType),
		OwnerLevel:         domain.HierarchyLevel(m.OwnerLevel),
		OwnerEntityID:      fromNullable(m.OwnerEntityID),
		Amount:             m.Amount,
		SourceType:         domain.SourceType(m.SourceType),
		ContributionTypeID: fromNullable(m.ContributionTypeID),
		EntryDate:          m.EntryDate,
		Reference:          m.Reference,
		Status:             domain.EntryStatus(m.Status),
		ReversedByEntryID:  fromNullable(m.ReversedByEntryID),
		ReversesEntryID:    fromNullable(m.ReversesEntryID),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to a slice of domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
