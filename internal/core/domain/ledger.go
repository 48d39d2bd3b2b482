package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies the asset nature of a ledger entry.
type EntryType string

const (
	EntryCash       EntryType = "CASH"
	EntryReceivable EntryType = "RECEIVABLE"
	EntryPayable    EntryType = "PAYABLE"
)

// SourceType records which workflow produced a ledger entry.
type SourceType string

const (
	SourceContribution       SourceType = "CONTRIBUTION"
	SourceExpenditure        SourceType = "EXPENDITURE"
	SourceOpeningBalance     SourceType = "OPENING_BALANCE"
	SourceTransferIn         SourceType = "TRANSFER_IN"
	SourceTransferOut        SourceType = "TRANSFER_OUT"
	SourceRemittanceSent     SourceType = "REMITTANCE_SENT"
	SourceRemittanceReceived SourceType = "REMITTANCE_RECEIVED"
)

// EntryStatus indicates whether an entry still counts toward balances.
type EntryStatus string

const (
	EntryActive   EntryStatus = "ACTIVE"
	EntryReversed EntryStatus = "REVERSED"
)

// validEntrySources lists the source types each entry type may carry. Cash
// entries arise from every workflow; receivables track money owed inward
// (scheduled remittances, pledged contributions); payables track money owed
// outward (remittances due, approved expenditures not yet paid).
var validEntrySources = map[EntryType]map[SourceType]bool{
	EntryCash: {
		SourceContribution:       true,
		SourceExpenditure:        true,
		SourceOpeningBalance:     true,
		SourceTransferIn:         true,
		SourceTransferOut:        true,
		SourceRemittanceSent:     true,
		SourceRemittanceReceived: true,
	},
	EntryReceivable: {
		SourceContribution:       true,
		SourceRemittanceReceived: true,
	},
	EntryPayable: {
		SourceExpenditure:    true,
		SourceRemittanceSent: true,
	},
}

// ValidEntryCombination reports whether the (entryType, sourceType) pair is
// one the ledger accepts.
func ValidEntryCombination(entryType EntryType, sourceType SourceType) bool {
	return validEntrySources[entryType][sourceType]
}

// LedgerEntry is the canonical, immutable record every balance is computed
// from. Entries are never updated in place; a correction reverses the
// original and appends a compensating entry, cross-referenced both ways.
type LedgerEntry struct {
	EntryID            string          `json:"entryID"` // Primary Key (UUID)
	EntryType          EntryType       `json:"entryType"`
	OwnerLevel         HierarchyLevel  `json:"ownerLevel"`
	OwnerEntityID      string          `json:"ownerEntityID,omitempty"` // Empty iff OwnerLevel == Mission
	Amount             decimal.Decimal `json:"amount"`                  // Signed, 2 decimal places
	SourceType         SourceType      `json:"sourceType"`
	ContributionTypeID string          `json:"contributionTypeID,omitempty"`
	EntryDate          time.Time       `json:"entryDate"` // Calendar date of the event
	Reference          string          `json:"reference"` // Human reference string
	Status             EntryStatus     `json:"status"`
	ReversedByEntryID  string          `json:"reversedByEntryID,omitempty"` // Set on the reversed original
	ReversesEntryID    string          `json:"reversesEntryID,omitempty"`   // Set on the compensating entry
	AuditFields
}

// OwnerMatches reports whether the entry belongs to the given owner.
func (e LedgerEntry) OwnerMatches(level HierarchyLevel, entityID string) bool {
	return e.OwnerLevel == level && e.OwnerEntityID == entityID
}
