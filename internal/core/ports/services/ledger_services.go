package services

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the append-only store of ledger entries, the single
// source of truth for all balances.
type LedgerSvcFacade interface {
	// AppendEntry validates and commits one entry, returning it with its id.
	AppendEntry(ctx context.Context, req dto.AppendLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error)

	// ReverseEntry flips an entry to Reversed and appends the compensating
	// entry; both are returned.
	ReverseEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.LedgerEntry, *domain.LedgerEntry, error)

	// QueryBalance sums Active entries for the owner up to asOf.
	QueryBalance(ctx context.Context, params dto.BalanceQueryParams) (decimal.Decimal, error)

	// ListEntries retrieves a paginated audit listing.
	ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)

	// GetEntryByID retrieves a single entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
}
