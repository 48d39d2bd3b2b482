package dto

import (
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScheduleRemittanceRequest defines the payload for scheduling a periodic obligation.
type ScheduleRemittanceRequest struct {
	BranchID         string          `json:"branchID" binding:"required"`
	DestinationLevel string          `json:"destinationLevel" binding:"required,oneof=AREA DISTRICT"`
	DestinationID    string          `json:"destinationID" binding:"required"`
	Month            int             `json:"month" binding:"required,min=1,max=12"`
	Year             int             `json:"year" binding:"required"`
	AmountDue        decimal.Decimal `json:"amountDue" binding:"required"`
}

// RecordPaymentRequest defines the payload for recording a remittance payment.
type RecordPaymentRequest struct {
	AmountSent       decimal.Decimal `json:"amountSent" binding:"required"`
	PaymentDate      time.Time       `json:"paymentDate" binding:"required" time_format:"2006-01-02"`
	PaymentMethod    string          `json:"paymentMethod" binding:"required"`
	PaymentReference string          `json:"paymentReference"`
	PaymentProofURL  string          `json:"paymentProofURL"`
}

// ListRemittancesParams filters remittance listings.
type ListRemittancesParams struct {
	BranchID *string `form:"branchID"`
	Status   *string `form:"status"`
	Month    *int    `form:"month"`
	Year     *int    `form:"year"`
}

// RemittanceResponse defines the data returned for a hierarchy remittance.
type RemittanceResponse struct {
	RemittanceID     string          `json:"remittanceID"`
	BranchID         string          `json:"branchID"`
	DestinationLevel string          `json:"destinationLevel"`
	DestinationID    string          `json:"destinationID"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	AmountDue        decimal.Decimal `json:"amountDue"`
	AmountSent       decimal.Decimal `json:"amountSent"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	PaymentProofURL  string          `json:"paymentProofURL,omitempty"`
	Status           string          `json:"status"`
	VerifierID       string          `json:"verifierID,omitempty"`
	VerifiedAt       *time.Time      `json:"verifiedAt,omitempty"`
	DueDate          time.Time       `json:"dueDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToRemittanceResponse converts a domain.HierarchyRemittance to its response DTO.
func ToRemittanceResponse(r *domain.HierarchyRemittance) RemittanceResponse {
	return RemittanceResponse{
		RemittanceID:     r.RemittanceID,
		BranchID:         r.BranchID,
		DestinationLevel: string(r.DestinationLevel),
		DestinationID:    r.DestinationID,
		Month:            r.Month,
		Year:             r.Year,
		AmountDue:        r.AmountDue,
		AmountSent:       r.AmountSent,
		Outstanding:      r.Outstanding(),
		PaymentDate:      r.PaymentDate,
		PaymentMethod:    r.PaymentMethod,
		PaymentReference: r.PaymentReference,
		PaymentProofURL:  r.PaymentProofURL,
		Status:           string(r.Status),
		VerifierID:       r.VerifierID,
		VerifiedAt:       r.VerifiedAt,
		DueDate:          r.DueDate(),
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
	}
}

// ToRemittanceResponses converts a slice of domain remittances to response DTOs.
func ToRemittanceResponses(rs []domain.HierarchyRemittance) []RemittanceResponse {
	responses := make([]RemittanceResponse, len(rs))
	for i := range rs {
		responses[i] = ToRemittanceResponse(&rs[i])
	}
	return responses
}
