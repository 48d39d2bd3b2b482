package dto

import (
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AppendLedgerEntryRequest defines the payload for appending a ledger entry.
type AppendLedgerEntryRequest struct {
	EntryType          string          `json:"entryType" binding:"required,oneof=CASH RECEIVABLE PAYABLE"`
	OwnerLevel         string          `json:"ownerLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	OwnerEntityID      string          `json:"ownerEntityID"` // Required iff ownerLevel != MISSION
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	SourceType         string          `json:"sourceType" binding:"required"`
	ContributionTypeID string          `json:"contributionTypeID"`
	EntryDate          time.Time       `json:"entryDate" binding:"required"`
	Reference          string          `json:"reference"`
}

// BalanceQueryParams defines the filters for a balance query.
type BalanceQueryParams struct {
	OwnerLevel         string     `form:"ownerLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	OwnerEntityID      string     `form:"ownerEntityID"`
	ContributionTypeID *string    `form:"contributionTypeID"`
	AsOf               *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ListLedgerEntriesParams defines pagination and filters for the audit listing.
type ListLedgerEntriesParams struct {
	OwnerLevel         string  `form:"ownerLevel" binding:"required,oneof=MISSION AREA DISTRICT BRANCH"`
	OwnerEntityID      string  `form:"ownerEntityID"`
	ContributionTypeID *string `form:"contributionTypeID"`
	Limit              int     `form:"limit"`
	NextToken          *string `form:"nextToken"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID            string          `json:"entryID"`
	EntryType          string          `json:"entryType"`
	OwnerLevel         string          `json:"ownerLevel"`
	OwnerEntityID      string          `json:"ownerEntityID,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	SourceType         string          `json:"sourceType"`
	ContributionTypeID string          `json:"contributionTypeID,omitempty"`
	EntryDate          time.Time       `json:"entryDate"`
	Reference          string          `json:"reference"`
	Status             string          `json:"status"`
	ReversedByEntryID  string          `json:"reversedByEntryID,omitempty"`
	ReversesEntryID    string          `json:"reversesEntryID,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// BalanceResponse defines the result of a balance query.
type BalanceResponse struct {
	OwnerLevel         string          `json:"ownerLevel"`
	OwnerEntityID      string          `json:"ownerEntityID,omitempty"`
	ContributionTypeID string          `json:"contributionTypeID,omitempty"`
	Balance            decimal.Decimal `json:"balance"`
	AsOf               time.Time       `json:"asOf"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:            e.EntryID,
		EntryType:          string(e.EntryType),
		OwnerLevel:         string(e.OwnerLevel),
		OwnerEntityID:      e.OwnerEntityID,
		Amount:             e.Amount,
		SourceType:         string(e.SourceType),
		ContributionTypeID: e.ContributionTypeID,
		EntryDate:          e.EntryDate,
		Reference:          e.Reference,
		Status:             string(e.Status),
		ReversedByEntryID:  e.ReversedByEntryID,
		ReversesEntryID:    e.ReversesEntryID,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries to response DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
