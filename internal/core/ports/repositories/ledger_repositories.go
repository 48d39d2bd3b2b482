package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerFilter narrows ledger aggregation and listing queries. Only Active
// entries are ever summed; AsOf bounds the entry date (inclusive).
type LedgerFilter struct {
	OwnerLevel         domain.HierarchyLevel
	OwnerEntityID      string // empty for Mission
	ContributionTypeID *string
	SourceTypes        []domain.SourceType
	AsOf               *time.Time
}

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// SumEntries sums the Active entries matching the filter. This is the only
	// supported balance read; no cached balance column exists anywhere.
	SumEntries(ctx context.Context, filter LedgerFilter) (decimal.Decimal, error)

	// ListEntries retrieves a paginated list of entries matching the filter
	// using token-based pagination, newest first.
	ListEntries(ctx context.Context, filter LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines append and reversal operations. Entries are immutable;
// the only permitted mutation is the Active -> Reversed status flip performed
// together with the compensating append.
type LedgerWriter interface {
	// AppendEntry commits a single entry atomically.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) error

	// AppendEntryInTx inserts an entry inside a caller-owned transaction so
	// workflows can post ledger effects together with their status change.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// ReverseEntry flips the original entry to Reversed and inserts the
	// compensating entry in one transaction. It fails with ErrConflict if the
	// original is no longer Active.
	ReverseEntry(ctx context.Context, original domain.LedgerEntry, compensating domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
