package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// OpeningBalanceFilter narrows opening balance listings.
type OpeningBalanceFilter struct {
	Level    *domain.HierarchyLevel
	BranchID *string
	Status   *domain.OpeningBalanceStatus
}

// OpeningBalanceReader defines read operations for opening balances.
type OpeningBalanceReader interface {
	// FindOpeningBalanceByID retrieves an opening balance by its identifier.
	FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error)

	// ExistsNonRejected reports whether a Pending or Approved opening balance
	// already exists for the (owner, contribution type) pair. branchID is
	// empty for Mission-level records.
	ExistsNonRejected(ctx context.Context, level domain.HierarchyLevel, branchID string, contributionTypeID string) (bool, error)

	// ListOpeningBalances retrieves opening balances matching the filter,
	// newest first.
	ListOpeningBalances(ctx context.Context, filter OpeningBalanceFilter) ([]domain.OpeningBalance, error)
}

// OpeningBalanceWriter defines write operations for opening balances.
type OpeningBalanceWriter interface {
	// SaveOpeningBalance persists a new Pending opening balance. A unique
	// constraint violation surfaces as ErrConflict.
	SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error

	// ApproveOpeningBalance transitions Pending -> Approved and posts the
	// opening ledger entry in one transaction. The status guard is part of the
	// UPDATE itself; a non-Pending record fails with ErrConflict without any
	// ledger effect.
	ApproveOpeningBalance(ctx context.Context, openingBalanceID string, approverID string, approvedAt time.Time, entry domain.LedgerEntry) error

	// RejectOpeningBalance transitions Pending -> Rejected with a reason.
	// Terminal, no ledger effect.
	RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actorID string, rejectedAt time.Time) error
}

// OpeningBalanceRepositoryFacade combines all opening balance repository interfaces.
type OpeningBalanceRepositoryFacade interface {
	OpeningBalanceReader
	OpeningBalanceWriter
}
