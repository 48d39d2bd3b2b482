package dto

import (
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProposeTransferRequest defines the payload for proposing a hierarchy transfer.
type ProposeTransferRequest struct {
	SourceLevel         string          `json:"sourceLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	SourceEntityID      string          `json:"sourceEntityID"` // Required iff sourceLevel != MISSION
	DestinationLevel    string          `json:"destinationLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	DestinationEntityID string          `json:"destinationEntityID"` // Required iff destinationLevel != MISSION
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Date                time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Purpose             string          `json:"purpose"`
	Reference           string          `json:"reference"`
	CrossLineage        bool            `json:"crossLineage"` // Explicit opt-in for out-of-lineage reallocation
}

// ListTransfersParams filters transfer listings.
type ListTransfersParams struct {
	Status      *string `form:"status"`
	SourceLevel *string `form:"sourceLevel"`
	EntityID    *string `form:"entityID"`
}

// TransferResponse defines the data returned for a hierarchy transfer.
type TransferResponse struct {
	TransferID          string          `json:"transferID"`
	SourceLevel         string          `json:"sourceLevel"`
	SourceEntityID      string          `json:"sourceEntityID,omitempty"`
	DestinationLevel    string          `json:"destinationLevel"`
	DestinationEntityID string          `json:"destinationEntityID,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	Date                time.Time       `json:"date"`
	Purpose             string          `json:"purpose"`
	Reference           string          `json:"reference"`
	CrossLineage        bool            `json:"crossLineage"`
	Status              string          `json:"status"`
	ApproverID          string          `json:"approverID,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
}

// ToTransferResponse converts a domain.HierarchyTransfer to its response DTO.
func ToTransferResponse(t *domain.HierarchyTransfer) TransferResponse {
	return TransferResponse{
		TransferID:          t.TransferID,
		SourceLevel:         string(t.SourceLevel),
		SourceEntityID:      t.SourceEntityID,
		DestinationLevel:    string(t.DestinationLevel),
		DestinationEntityID: t.DestinationEntityID,
		Amount:              t.Amount,
		Date:                t.Date,
		Purpose:             t.Purpose,
		Reference:           t.Reference,
		CrossLineage:        t.CrossLineage,
		Status:              string(t.Status),
		ApproverID:          t.ApproverID,
		ApprovedAt:          t.ApprovedAt,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
	}
}

// ToTransferResponses converts a slice of domain transfers to response DTOs.
func ToTransferResponses(transfers []domain.HierarchyTransfer) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i := range transfers {
		responses[i] = ToTransferResponse(&transfers[i])
	}
	return responses
}
