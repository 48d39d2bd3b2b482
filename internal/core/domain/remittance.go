package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceStatus tracks the settlement lifecycle of a periodic obligation.
type RemittanceStatus string

const (
	RemittancePending  RemittanceStatus = "PENDING"
	RemittanceSent     RemittanceStatus = "SENT"
	RemittanceVerified RemittanceStatus = "VERIFIED"
	RemittanceOverdue  RemittanceStatus = "OVERDUE"
)

// overdueDayOfMonth is the day of the month following the period on which an
// unpaid remittance becomes overdue.
const overdueDayOfMonth = 10

// HierarchyRemittance is a periodic (month/year) obligation of a branch
// toward its area or district, unique per (branch, destination, period).
type HierarchyRemittance struct {
	RemittanceID      string           `json:"remittanceID"` // Primary Key (UUID)
	BranchID          string           `json:"branchID"`
	DestinationLevel  HierarchyLevel   `json:"destinationLevel"` // Area or District only
	DestinationID     string           `json:"destinationID"`    // Area or District ID per DestinationLevel
	Month             int              `json:"month"`            // 1-12
	Year              int              `json:"year"`
	AmountDue         decimal.Decimal  `json:"amountDue"`
	AmountSent        decimal.Decimal  `json:"amountSent"` // Default 0; partial payments allowed
	PaymentDate       *time.Time       `json:"paymentDate,omitempty"`
	PaymentMethod     string           `json:"paymentMethod,omitempty"`
	PaymentReference  string           `json:"paymentReference,omitempty"`
	PaymentProofURL   string           `json:"paymentProofURL,omitempty"`
	Status            RemittanceStatus `json:"status"`
	VerifierID        string           `json:"verifierID,omitempty"`
	VerifiedAt        *time.Time       `json:"verifiedAt,omitempty"`
	SentLedgerEntryID string           `json:"sentLedgerEntryID,omitempty"`
	RecvLedgerEntryID string           `json:"recvLedgerEntryID,omitempty"`
	AuditFields
}

// Outstanding returns max(0, amountDue - amountSent).
func (r HierarchyRemittance) Outstanding() decimal.Decimal {
	out := r.AmountDue.Sub(r.AmountSent)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DueDate is the 10th of the month following the remittance period.
// time.Date normalizes month 13 into January of the next year.
func (r HierarchyRemittance) DueDate() time.Time {
	return time.Date(r.Year, time.Month(r.Month)+1, overdueDayOfMonth, 0, 0, 0, 0, time.UTC)
}

// AcceptsPayment reports whether a payment may still be recorded. Overdue is
// not terminal; a late payment is still a payment.
func (r HierarchyRemittance) AcceptsPayment() bool {
	return r.Status == RemittancePending || r.Status == RemittanceOverdue
}
