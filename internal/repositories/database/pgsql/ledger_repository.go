package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/mission_finance_app/internal/models"
	"github.com/SscSPs/mission_finance_app/internal/utils/mapping"
	"github.com/SscSPs/mission_finance_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `
	entry_id, entry_type, owner_level, owner_entity_id, amount, source_type,
	contribution_type_id, entry_date, reference, status,
	reversed_by_entry_id, reverses_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const ledgerInsertQuery = `
	INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

func ledgerInsertArgs(m models.LedgerEntry) []interface{} {
	return []interface{}{
		m.EntryID,
		m.EntryType,
		m.OwnerLevel,
		m.OwnerEntityID,
		m.Amount,
		m.SourceType,
		m.ContributionTypeID,
		m.EntryDate,
		m.Reference,
		m.Status,
		m.ReversedByEntryID,
		m.ReversesEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryType,
		&m.OwnerLevel,
		&m.OwnerEntityID,
		&m.Amount,
		&m.SourceType,
		&m.ContributionTypeID,
		&m.EntryDate,
		&m.Reference,
		&m.Status,
		&m.ReversedByEntryID,
		&m.ReversesEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// buildFilterClauses turns a LedgerFilter into WHERE predicates starting at
// placeholder $1. Mission owners match on owner_entity_id IS NULL.
func buildFilterClauses(filter portsrepo.LedgerFilter) (string, []interface{}) {
	clauses := `WHERE owner_level = $1`
	args := []interface{}{string(filter.OwnerLevel)}

	if filter.OwnerEntityID == "" {
		clauses += ` AND owner_entity_id IS NULL`
	} else {
		args = append(args, filter.OwnerEntityID)
		clauses += ` AND owner_entity_id = $` + strconv.Itoa(len(args))
	}
	if filter.ContributionTypeID != nil {
		args = append(args, *filter.ContributionTypeID)
		clauses += ` AND contribution_type_id = $` + strconv.Itoa(len(args))
	}
	if len(filter.SourceTypes) > 0 {
		sources := make([]string, len(filter.SourceTypes))
		for i, s := range filter.SourceTypes {
			sources[i] = string(s)
		}
		args = append(args, sources)
		clauses += ` AND source_type = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.AsOf != nil {
		args = append(args, *filter.AsOf)
		clauses += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	return clauses, args
}

// AppendEntry commits a single entry atomically.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.Pool.Exec(ctx, ledgerInsertQuery, ledgerInsertArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// AppendEntryInTx inserts an entry inside a caller-owned transaction.
func (r *PgxLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := tx.Exec(ctx, ledgerInsertQuery, ledgerInsertArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// ReverseEntry flips the original to Reversed and inserts the compensating
// entry in one transaction. The status guard is part of the UPDATE; losing the
// race to another reversal surfaces as ErrConflict with no ledger effect.
func (r *PgxLedgerRepository) ReverseEntry(ctx context.Context, original domain.LedgerEntry, compensating domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE ledger_entries
		SET status = 'REVERSED', reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'ACTIVE';
	`
	tag, err := tx.Exec(ctx, updateQuery,
		original.EntryID,
		compensating.EntryID,
		compensating.CreatedAt,
		compensating.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark ledger entry "+original.EntryID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.AppendEntryInTx(ctx, tx, compensating); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}
	d := mapping.ToDomainLedgerEntry(m)
	return &d, nil
}

// SumEntries sums the Active entries matching the filter. Balances are always
// computed from this aggregate; no cached balance column exists.
func (r *PgxLedgerRepository) SumEntries(ctx context.Context, filter portsrepo.LedgerFilter) (decimal.Decimal, error) {
	clauses, args := buildFilterClauses(filter)
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries ` + clauses + ` AND status = 'ACTIVE';`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger entries", err)
	}
	return sum, nil
}

// ListEntries retrieves a paginated list of entries matching the filter using
// token-based pagination, newest first. Ordering is (entry_date, created_at)
// descending, both carried in the token.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	clauses, args := buildFilterClauses(filter)
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries ` + clauses

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainLedgerEntrySlice(entries), newNextToken, nil
}
