package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance represents a row of the opening_balances table.
type OpeningBalance struct {
	OpeningBalanceID   string          `json:"openingBalanceID"` // Primary Key (UUID)
	Level              string          `json:"level"`
	BranchID           *string         `json:"branchID"` // NULL for mission records
	Amount             decimal.Decimal `json:"amount"`
	ContributionTypeID string          `json:"contributionTypeID"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	Status             string          `json:"status"`
	ApproverID         *string         `json:"approverID"`
	ApprovedAt         *time.Time      `json:"approvedAt"`
	RejectionReason    *string         `json:"rejectionReason"`
	LedgerEntryID      *string         `json:"ledgerEntryID"`
	AuditFields
}
