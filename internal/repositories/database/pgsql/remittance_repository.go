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

type PgxRemittanceRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryWithTx
}

// newPgxRemittanceRepository creates a new repository for hierarchy remittance data.
func newPgxRemittanceRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryWithTx) portsrepo.RemittanceRepositoryFacade {
	return &PgxRemittanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxRemittanceRepository implements portsrepo.RemittanceRepositoryFacade
var _ portsrepo.RemittanceRepositoryFacade = (*PgxRemittanceRepository)(nil)

const remittanceColumns = `
	remittance_id, branch_id, destination_level, destination_id, month, year,
	amount_due, amount_sent, payment_date, payment_method, payment_reference, payment_proof_url,
	status, verifier_id, verified_at, sent_ledger_entry_id, recv_ledger_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRemittance(row pgx.Row) (models.HierarchyRemittance, error) {
	var m models.HierarchyRemittance
	err := row.Scan(
		&m.RemittanceID,
		&m.BranchID,
		&m.DestinationLevel,
		&m.DestinationID,
		&m.Month,
		&m.Year,
		&m.AmountDue,
		&m.AmountSent,
		&m.PaymentDate,
		&m.PaymentMethod,
		&m.PaymentReference,
		&m.PaymentProofURL,
		&m.Status,
		&m.VerifierID,
		&m.VerifiedAt,
		&m.SentLedgerEntryID,
		&m.RecvLedgerEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRemittance persists a new Pending remittance. The unique index on
// (branch, destination, month, year) turns a duplicate period into ErrConflict.
func (r *PgxRemittanceRepository) SaveRemittance(ctx context.Context, remittance domain.HierarchyRemittance) error {
	m := mapping.ToModelRemittance(remittance)
	query := `
		INSERT INTO hierarchy_remittances (` + remittanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RemittanceID,
		m.BranchID,
		m.DestinationLevel,
		m.DestinationID,
		m.Month,
		m.Year,
		m.AmountDue,
		m.AmountSent,
		m.PaymentDate,
		m.PaymentMethod,
		m.PaymentReference,
		m.PaymentProofURL,
		m.Status,
		m.VerifierID,
		m.VerifiedAt,
		m.SentLedgerEntryID,
		m.RecvLedgerEntryID,
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
		return apperrors.NewAppError(500, "failed to insert remittance "+m.RemittanceID, err)
	}
	return nil
}

// RecordPayment transitions Pending/Overdue -> Sent, stores the payment
// metadata, and posts the branch-side entry in one transaction. The status
// guard is part of the UPDATE; a record no longer accepting payment fails
// with ErrConflict before any ledger write.
func (r *PgxRemittanceRepository) RecordPayment(ctx context.Context, remittance domain.HierarchyRemittance, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRemittance(remittance)
	updateQuery := `
		UPDATE hierarchy_remittances
		SET status = 'SENT', amount_sent = $2, payment_date = $3, payment_method = $4,
		    payment_reference = $5, payment_proof_url = $6, sent_ledger_entry_id = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE remittance_id = $1 AND status IN ('PENDING', 'OVERDUE');
	`
	tag, err := tx.Exec(ctx, updateQuery,
		m.RemittanceID,
		m.AmountSent,
		m.PaymentDate,
		m.PaymentMethod,
		m.PaymentReference,
		m.PaymentProofURL,
		m.SentLedgerEntryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record payment for remittance "+m.RemittanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.ledgerRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// VerifyRemittance transitions Sent -> Verified and posts the destination-side
// entry in one transaction, guarded on the Sent status.
func (r *PgxRemittanceRepository) VerifyRemittance(ctx context.Context, remittanceID string, verifierID string, verifiedAt time.Time, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE hierarchy_remittances
		SET status = 'VERIFIED', verifier_id = $2, verified_at = $3, recv_ledger_entry_id = $4,
		    last_updated_at = $3, last_updated_by = $2
		WHERE remittance_id = $1 AND status = 'SENT';
	`
	tag, err := tx.Exec(ctx, updateQuery, remittanceID, verifierID, verifiedAt, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to verify remittance "+remittanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.ledgerRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkOverdue transitions every Pending remittance whose due date (the 10th
// of the month following the period) has passed as of the given time. The
// status predicate makes repeated sweeps no-ops.
func (r *PgxRemittanceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE hierarchy_remittances
		SET status = 'OVERDUE', last_updated_at = $1, last_updated_by = 'system'
		WHERE status = 'PENDING'
		  AND (make_date(year, month, 1) + INTERVAL '1 month' + INTERVAL '9 days') < $1;
	`
	tag, err := r.Pool.Exec(ctx, query, asOf)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue remittances", err)
	}
	return tag.RowsAffected(), nil
}

// FindRemittanceByID retrieves a remittance by its ID.
func (r *PgxRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.HierarchyRemittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM hierarchy_remittances WHERE remittance_id = $1;`
	m, err := scanRemittance(r.Pool.QueryRow(ctx, query, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find remittance by ID "+remittanceID, err)
	}
	d := mapping.ToDomainRemittance(m)
	return &d, nil
}

// ExistsForPeriod reports whether a remittance already exists for the
// (branch, destination, month, year) tuple.
func (r *PgxRemittanceRepository) ExistsForPeriod(ctx context.Context, branchID string, destLevel domain.HierarchyLevel, destinationID string, month int, year int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM hierarchy_remittances
			WHERE branch_id = $1 AND destination_level = $2 AND destination_id = $3
			  AND month = $4 AND year = $5
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, branchID, string(destLevel), destinationID, month, year).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check remittance existence", err)
	}
	return exists, nil
}

// ListRemittances retrieves remittances matching the filter, newest period first.
func (r *PgxRemittanceRepository) ListRemittances(ctx context.Context, filter portsrepo.RemittanceFilter) ([]domain.HierarchyRemittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM hierarchy_remittances WHERE 1=1`
	args := []interface{}{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		query += ` AND month = $` + strconv.Itoa(len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += ` AND year = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY year DESC, month DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query remittances", err)
	}
	defer rows.Close()

	remittances := []models.HierarchyRemittance{}
	for rows.Next() {
		m, err := scanRemittance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan remittance row", err)
		}
		remittances = append(remittances, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating remittance rows", err)
	}

	return mapping.ToDomainRemittanceSlice(remittances), nil
}
