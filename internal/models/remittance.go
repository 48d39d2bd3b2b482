package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HierarchyRemittance represents a row of the hierarchy_remittances table,
// unique per (branch, destination, month, year).
type HierarchyRemittance struct {
	RemittanceID      string          `json:"remittanceID"` // Primary Key (UUID)
	BranchID          string          `json:"branchID"`
	DestinationLevel  string          `json:"destinationLevel"`
	DestinationID     string          `json:"destinationID"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	AmountDue         decimal.Decimal `json:"amountDue"`
	AmountSent        decimal.Decimal `json:"amountSent"`
	PaymentDate       *time.Time      `json:"paymentDate"`
	PaymentMethod     *string         `json:"paymentMethod"`
	PaymentReference  *string         `json:"paymentReference"`
	PaymentProofURL   *string         `json:"paymentProofURL"`
	Status            string          `json:"status"`
	VerifierID        *string         `json:"verifierID"`
	VerifiedAt        *time.Time      `json:"verifiedAt"`
	SentLedgerEntryID *string         `json:"sentLedgerEntryID"`
	RecvLedgerEntryID *string         `json:"recvLedgerEntryID"`
	AuditFields
}
