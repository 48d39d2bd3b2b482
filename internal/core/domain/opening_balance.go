package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalanceStatus tracks the approval lifecycle of an opening balance.
type OpeningBalanceStatus string

const (
	OpeningBalancePending  OpeningBalanceStatus = "PENDING"
	OpeningBalanceApproved OpeningBalanceStatus = "APPROVED"
	OpeningBalanceRejected OpeningBalanceStatus = "REJECTED"
)

// OpeningBalance is a one-time, approval-gated record of pre-system cash.
// Only Mission and Branch hold opening balances directly. At most one
// non-rejected record may exist per (owner, contribution type).
type OpeningBalance struct {
	OpeningBalanceID   string               `json:"openingBalanceID"` // Primary Key (UUID)
	Level              HierarchyLevel       `json:"level"`            // Mission or Branch only
	BranchID           string               `json:"branchID,omitempty"` // Required iff Level == Branch
	Amount             decimal.Decimal      `json:"amount"`             // > 0
	ContributionTypeID string               `json:"contributionTypeID"`
	Date               time.Time            `json:"date"`
	Description        string               `json:"description"`
	Status             OpeningBalanceStatus `json:"status"`
	ApproverID         string               `json:"approverID,omitempty"`
	ApprovedAt         *time.Time           `json:"approvedAt,omitempty"`
	RejectionReason    string               `json:"rejectionReason,omitempty"`
	LedgerEntryID      string               `json:"ledgerEntryID,omitempty"` // Set on approval
	AuditFields
}

// IsPending reports whether the record still accepts an approval decision.
func (ob OpeningBalance) IsPending() bool {
	return ob.Status == OpeningBalancePending
}
