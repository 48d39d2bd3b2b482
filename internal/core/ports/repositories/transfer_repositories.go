package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// TransferFilter narrows transfer listings.
type TransferFilter struct {
	Status      *domain.TransferStatus
	SourceLevel *domain.HierarchyLevel
	EntityID    *string // matches either side
}

// TransferReader defines read operations for hierarchy transfers.
type TransferReader interface {
	// FindTransferByID retrieves a transfer by its identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.HierarchyTransfer, error)

	// ListTransfers retrieves transfers matching the filter, newest first.
	ListTransfers(ctx context.Context, filter TransferFilter) ([]domain.HierarchyTransfer, error)
}

// TransferWriter defines write operations for hierarchy transfers.
type TransferWriter interface {
	// SaveTransfer persists a new Pending transfer.
	SaveTransfer(ctx context.Context, transfer domain.HierarchyTransfer) error

	// CompleteTransfer transitions Pending -> Completed and posts the two
	// ledger entries (TransferOut at source, TransferIn at destination) in one
	// transaction. The two-entry post succeeds or fails together; a
	// non-Pending record fails with ErrConflict.
	CompleteTransfer(ctx context.Context, transferID string, approverID string, approvedAt time.Time, outEntry domain.LedgerEntry, inEntry domain.LedgerEntry) error

	// CancelTransfer transitions Pending -> Cancelled. Terminal, no ledger effect.
	CancelTransfer(ctx context.Context, transferID string, actorID string, cancelledAt time.Time) error
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
