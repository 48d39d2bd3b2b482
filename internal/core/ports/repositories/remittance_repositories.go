package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// RemittanceFilter narrows remittance listings.
type RemittanceFilter struct {
	BranchID *string
	Status   *domain.RemittanceStatus
	Month    *int
	Year     *int
}

// RemittanceReader defines read operations for hierarchy remittances.
type RemittanceReader interface {
	// FindRemittanceByID retrieves a remittance by its identifier.
	FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.HierarchyRemittance, error)

	// ExistsForPeriod reports whether a remittance already exists for the
	// (branch, destination level, destination entity, month, year) tuple.
	ExistsForPeriod(ctx context.Context, branchID string, destLevel domain.HierarchyLevel, destinationID string, month int, year int) (bool, error)

	// ListRemittances retrieves remittances matching the filter, newest period first.
	ListRemittances(ctx context.Context, filter RemittanceFilter) ([]domain.HierarchyRemittance, error)
}

// RemittanceWriter defines write operations for hierarchy remittances.
type RemittanceWriter interface {
	// SaveRemittance persists a new Pending remittance. A unique constraint
	// violation surfaces as ErrConflict.
	SaveRemittance(ctx context.Context, remittance domain.HierarchyRemittance) error

	// RecordPayment transitions Pending/Overdue -> Sent, stores the payment
	// metadata, and posts the RemittanceSent entry at the branch in one
	// transaction. Fails with ErrConflict if the record no longer accepts
	// payment.
	RecordPayment(ctx context.Context, remittance domain.HierarchyRemittance, entry domain.LedgerEntry) error

	// VerifyRemittance transitions Sent -> Verified and posts the
	// RemittanceReceived entry at the destination in one transaction. Fails
	// with ErrConflict if the record is not Sent.
	VerifyRemittance(ctx context.Context, remittanceID string, verifierID string, verifiedAt time.Time, entry domain.LedgerEntry) error

	// MarkOverdue transitions every Pending remittance whose due date has
	// passed as of the given time to Overdue. Idempotent; returns the number
	// of records transitioned.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// RemittanceRepositoryFacade combines all remittance repository interfaces.
type RemittanceRepositoryFacade interface {
	RemittanceReader
	RemittanceWriter
}
