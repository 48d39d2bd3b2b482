package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HierarchyTransfer represents a row of the hierarchy_transfers table.
type HierarchyTransfer struct {
	TransferID          string          `json:"transferID"` // Primary Key (UUID)
	SourceLevel         string          `json:"sourceLevel"`
	SourceEntityID      *string         `json:"sourceEntityID"` // NULL for mission side
	DestinationLevel    string          `json:"destinationLevel"`
	DestinationEntityID *string         `json:"destinationEntityID"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	Purpose             string          `json:"purpose"`
	Reference           string          `json:"reference"`
	CrossLineage        bool            `json:"crossLineage"`
	Status              string          `json:"status"`
	ApproverID          *string         `json:"approverID"`
	ApprovedAt          *time.Time      `json:"approvedAt"`
	AuditFields
}
