package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates whether a ledger row still counts toward balances.
type EntryStatus string

const (
	EntryActive   EntryStatus = "ACTIVE"
	EntryReversed EntryStatus = "REVERSED"
)

// LedgerEntry represents a row of the ledger_entries table. Rows are never
// updated in place except for the Active -> Reversed status flip.
type LedgerEntry struct {
	EntryID            string          `json:"entryID"` // Primary Key (UUID)
	EntryType          string          `json:"entryType"`
	OwnerLevel         string          `json:"ownerLevel"`
	OwnerEntityID      *string         `json:"ownerEntityID"` // NULL for mission owners
	Amount             decimal.Decimal `json:"amount"`
	SourceType         string          `json:"sourceType"`
	ContributionTypeID *string         `json:"contributionTypeID"` // NULL for untyped entries
	EntryDate          time.Time       `json:"entryDate"`
	Reference          string          `json:"reference"`
	Status             EntryStatus     `json:"status"`
	ReversedByEntryID  *string         `json:"reversedByEntryID"`
	ReversesEntryID    *string         `json:"reversesEntryID"`
	AuditFields
}
