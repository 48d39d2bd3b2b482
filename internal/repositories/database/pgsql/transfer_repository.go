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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransferRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryWithTx
}

// newPgxTransferRepository creates a new repository for hierarchy transfer data.
func newPgxTransferRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryWithTx) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryFacade
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const transferColumns = `
	transfer_id, source_level, source_entity_id, destination_level, destination_entity_id,
	amount, date, purpose, reference, cross_lineage, status, approver_id, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransfer(row pgx.Row) (models.HierarchyTransfer, error) {
	var m models.HierarchyTransfer
	err := row.Scan(
		&m.TransferID,
		&m.SourceLevel,
		&m.SourceEntityID,
		&m.DestinationLevel,
		&m.DestinationEntityID,
		&m.Amount,
		&m.Date,
		&m.Purpose,
		&m.Reference,
		&m.CrossLineage,
		&m.Status,
		&m.ApproverID,
		&m.ApprovedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransfer persists a new Pending transfer.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.HierarchyTransfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO hierarchy_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransferID,
		m.SourceLevel,
		m.SourceEntityID,
		m.DestinationLevel,
		m.DestinationEntityID,
		m.Amount,
		m.Date,
		m.Purpose,
		m.Reference,
		m.CrossLineage,
		m.Status,
		m.ApproverID,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer "+m.TransferID, err)
	}
	return nil
}

// CompleteTransfer transitions Pending -> Completed and posts the paired
// out/in entries in one transaction. The status guard is part of the UPDATE;
// a concurrent approve or cancel makes the other caller fail with ErrConflict
// before any ledger write. The two entries succeed or fail together.
func (r *PgxTransferRepository) CompleteTransfer(ctx context.Context, transferID string, approverID string, approvedAt time.Time, outEntry domain.LedgerEntry, inEntry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE hierarchy_transfers
		SET status = 'COMPLETED', approver_id = $2, approved_at = $3,
		    last_updated_at = $3, last_updated_by = $2
		WHERE transfer_id = $1 AND status = 'PENDING';
	`
	tag, err := tx.Exec(ctx, updateQuery, transferID, approverID, approvedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete transfer "+transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.ledgerRepo.AppendEntryInTx(ctx, tx, outEntry); err != nil {
		return err
	}
	if err := r.ledgerRepo.AppendEntryInTx(ctx, tx, inEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelTransfer transitions Pending -> Cancelled.
func (r *PgxTransferRepository) CancelTransfer(ctx context.Context, transferID string, actorID string, cancelledAt time.Time) error {
	query := `
		UPDATE hierarchy_transfers
		SET status = 'CANCELLED', last_updated_at = $3, last_updated_by = $2
		WHERE transfer_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, transferID, actorID, cancelledAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel transfer "+transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.HierarchyTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM hierarchy_transfers WHERE transfer_id = $1;`
	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer by ID "+transferID, err)
	}
	d := mapping.ToDomainTransfer(m)
	return &d, nil
}

// ListTransfers retrieves transfers matching the filter, newest first.
func (r *PgxTransferRepository) ListTransfers(ctx context.Context, filter portsrepo.TransferFilter) ([]domain.HierarchyTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM hierarchy_transfers WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.SourceLevel != nil {
		args = append(args, string(*filter.SourceLevel))
		query += ` AND source_level = $` + strconv.Itoa(len(args))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		n := strconv.Itoa(len(args))
		query += ` AND (source_entity_id = $` + n + ` OR destination_entity_id = $` + n + `)`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transfers", err)
	}
	defer rows.Close()

	transfers := []models.HierarchyTransfer{}
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transfer row", err)
		}
		transfers = append(transfers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transfer rows", err)
	}

	return mapping.ToDomainTransferSlice(transfers), nil
}
