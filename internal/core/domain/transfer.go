package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus tracks the lifecycle of a hierarchy transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferCancelled TransferStatus = "CANCELLED"
)

// HierarchyTransfer moves funds between two adjacent hierarchy levels.
// Completion posts exactly two ledger entries, TransferOut at the source and
// TransferIn at the destination, both referencing the transfer.
type HierarchyTransfer struct {
	TransferID          string          `json:"transferID"` // Primary Key (UUID)
	SourceLevel         HierarchyLevel  `json:"sourceLevel"`
	SourceEntityID      string          `json:"sourceEntityID,omitempty"` // Empty iff SourceLevel == Mission
	DestinationLevel    HierarchyLevel  `json:"destinationLevel"`
	DestinationEntityID string          `json:"destinationEntityID,omitempty"` // Empty iff DestinationLevel == Mission
	Amount              decimal.Decimal `json:"amount"`                        // > 0
	Date                time.Time       `json:"date"`
	Purpose             string          `json:"purpose"`
	Reference           string          `json:"reference"`
	CrossLineage        bool            `json:"crossLineage"` // Explicitly flagged out-of-lineage reallocation
	Status              TransferStatus  `json:"status"`
	ApproverID          string          `json:"approverID,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	AuditFields
}

// IsPending reports whether the transfer still accepts approval or cancel.
func (t HierarchyTransfer) IsPending() bool {
	return t.Status == TransferPending
}

// LevelsAreAdjacent reports whether source and destination are one of the six
// legal adjacent pairs.
func (t HierarchyTransfer) LevelsAreAdjacent() bool {
	return LevelsAdjacent(t.SourceLevel, t.DestinationLevel)
}
