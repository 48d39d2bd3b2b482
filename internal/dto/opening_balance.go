package dto

import (
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitOpeningBalanceRequest defines the payload for submitting an opening balance.
type SubmitOpeningBalanceRequest struct {
	Level              string          `json:"level" binding:"required,oneof=MISSION BRANCH"`
	BranchID           string          `json:"branchID"` // Required iff level == BRANCH
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	ContributionTypeID string          `json:"contributionTypeID" binding:"required"`
	Date               time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Description        string          `json:"description"`
}

// RejectOpeningBalanceRequest carries the mandatory rejection reason.
type RejectOpeningBalanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListOpeningBalancesParams filters opening balance listings.
type ListOpeningBalancesParams struct {
	Level    *string `form:"level"`
	BranchID *string `form:"branchID"`
	Status   *string `form:"status"`
}

// OpeningBalanceResponse defines the data returned for an opening balance.
type OpeningBalanceResponse struct {
	OpeningBalanceID   string          `json:"openingBalanceID"`
	Level              string          `json:"level"`
	BranchID           string          `json:"branchID,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	ContributionTypeID string          `json:"contributionTypeID"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	Status             string          `json:"status"`
	ApproverID         string          `json:"approverID,omitempty"`
	ApprovedAt         *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason    string          `json:"rejectionReason,omitempty"`
	LedgerEntryID      string          `json:"ledgerEntryID,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ToOpeningBalanceResponse converts a domain.OpeningBalance to its response DTO.
func ToOpeningBalanceResponse(ob *domain.OpeningBalance) OpeningBalanceResponse {
	return OpeningBalanceResponse{
		OpeningBalanceID:   ob.OpeningBalanceID,
		Level:              string(ob.Level),
		BranchID:           ob.BranchID,
		Amount:             ob.Amount,
		ContributionTypeID: ob.ContributionTypeID,
		Date:               ob.Date,
		Description:        ob.Description,
		Status:             string(ob.Status),
		ApproverID:         ob.ApproverID,
		ApprovedAt:         ob.ApprovedAt,
		RejectionReason:    ob.RejectionReason,
		LedgerEntryID:      ob.LedgerEntryID,
		CreatedAt:          ob.CreatedAt,
		CreatedBy:          ob.CreatedBy,
	}
}

// ToOpeningBalanceResponses converts a slice of domain records to response DTOs.
func ToOpeningBalanceResponses(obs []domain.OpeningBalance) []OpeningBalanceResponse {
	responses := make([]OpeningBalanceResponse, len(obs))
	for i := range obs {
		responses[i] = ToOpeningBalanceResponse(&obs[i])
	}
	return responses
}
