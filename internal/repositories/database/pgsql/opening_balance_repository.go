package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/mission_finance_app/internal/models"
	"github.com/SscSPs/mission_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOpeningBalanceRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryWithTx
}

// newPgxOpeningBalanceRepository creates a new repository for opening balance data.
func newPgxOpeningBalanceRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryWithTx) portsrepo.OpeningBalanceRepositoryFacade {
	return &PgxOpeningBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxOpeningBalanceRepository implements portsrepo.OpeningBalanceRepositoryFacade
var _ portsrepo.OpeningBalanceRepositoryFacade = (*PgxOpeningBalanceRepository)(nil)

const openingBalanceColumns = `
	opening_balance_id, level, branch_id, amount, contribution_type_id, date,
	description, status, approver_id, approved_at, rejection_reason, ledger_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOpeningBalance(row pgx.Row) (models.OpeningBalance, error) {
	var m models.OpeningBalance
	err := row.Scan(
		&m.OpeningBalanceID,
		&m.Level,
		&m.BranchID,
		&m.Amount,
		&m.ContributionTypeID,
		&m.Date,
		&m.Description,
		&m.Status,
		&m.ApproverID,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.LedgerEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOpeningBalance persists a new Pending opening balance. The partial
// unique index on non-rejected records turns a duplicate submission into
// ErrConflict.
func (r *PgxOpeningBalanceRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) error {
	m := mapping.ToModelOpeningBalance(ob)
	query := `
		INSERT INTO opening_balances (` + openingBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OpeningBalanceID,
		m.Level,
		m.BranchID,
		m.Amount,
		m.ContributionTypeID,
		m.Date,
		m.Description,
		m.Status,
		m.ApproverID,
		m.ApprovedAt,
		m.RejectionReason,
		m.LedgerEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrConflict
			}
		}
		return apperrors.NewAppError(500, "failed to insert opening balance "+m.OpeningBalanceID, err)
	}
	return nil
}

// ApproveOpeningBalance transitions Pending -> Approved and posts the opening
// ledger entry in one transaction. The WHERE status = 'PENDING' guard makes
// concurrent approvals race on the row; the loser sees zero rows updated and
// fails with ErrConflict before any ledger write.
func (r *PgxOpeningBalanceRepository) ApproveOpeningBalance(ctx context.Context, openingBalanceID string, approverID string, approvedAt time.Time, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE opening_balances
		SET status = 'APPROVED', approver_id = $2, approved_at = $3, ledger_entry_id = $4,
		    last_updated_at = $3, last_updated_by = $2
		WHERE opening_balance_id = $1 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, updateQuery, openingBalanceID, approverID, approvedAt, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve opening balance "+openingBalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.ledgerRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RejectOpeningBalance transitions Pending -> Rejected with a reason.
func (r *PgxOpeningBalanceRepository) RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actorID string, rejectedAt time.Time) error {
	query := `
		UPDATE opening_balances
		SET status = 'REJECTED', rejection_reason = $2, approver_id = $3,
		    last_updated_at = $4, last_updated_by = $3
		WHERE opening_balance_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, openingBalanceID, reason, actorID, rejectedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reject opening balance "+openingBalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// FindOpeningBalanceByID retrieves an opening balance by its ID.
func (r *PgxOpeningBalanceRepository) FindOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM opening_balances WHERE opening_balance_id = $1;`
	m, err := scanOpeningBalance(r.Pool.QueryRow(ctx, query, openingBalanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find opening balance by ID "+openingBalanceID, err)
	}
	d := mapping.ToDomainOpeningBalance(m)
	return &d, nil
}

// ExistsNonRejected reports whether a Pending or Approved opening balance
// already exists for the (owner, contribution type) pair.
func (r *PgxOpeningBalanceRepository) ExistsNonRejected(ctx context.Context, level domain.HierarchyLevel, branchID string, contributionTypeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM opening_balances
			WHERE level = $1 AND contribution_type_id = $2 AND status != 'REJECTED'
	`
	args := []interface{}{string(level), contributionTypeID}
	if branchID == "" {
		query += ` AND branch_id IS NULL`
	} else {
		args = append(args, branchID)
		query += ` AND branch_id = $3`
	}
	query += `);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check opening balance existence", err)
	}
	return exists, nil
}

// ListOpeningBalances retrieves opening balances matching the filter, newest first.
func (r *PgxOpeningBalanceRepository) ListOpeningBalances(ctx context.Context, filter portsrepo.OpeningBalanceFilter) ([]domain.OpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM opening_balances WHERE 1=1`
	args := []interface{}{}

	if filter.Level != nil {
		args = append(args, string(*filter.Level))
		query += ` AND level = $` + strconv.Itoa(len(args))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query opening balances", err)
	}
	defer rows.Close()

	obs := []models.OpeningBalance{}
	for rows.Next() {
		m, err := scanOpeningBalance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan opening balance row", err)
		}
		obs = append(obs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating opening balance rows", err)
	}

	return mapping.ToDomainOpeningBalanceSlice(obs), nil
}
