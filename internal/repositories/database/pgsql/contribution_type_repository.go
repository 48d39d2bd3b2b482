package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	"github.com/SscSPs/mission_finance_app/internal/models"
	"github.com/SscSPs/mission_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContributionTypeRepository struct {
	BaseRepository
}

// newPgxContributionTypeRepository creates a new repository for contribution type data.
func newPgxContributionTypeRepository(pool *pgxpool.Pool) portsrepo.ContributionTypeRepositoryFacade {
	return &PgxContributionTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxContributionTypeRepository implements portsrepo.ContributionTypeRepositoryFacade
var _ portsrepo.ContributionTypeRepositoryFacade = (*PgxContributionTypeRepository)(nil)

const contributionTypeColumns = `
	contribution_type_id, name, code, scope, owner_entity_id,
	mission_pct, area_pct, district_pct, branch_pct, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanContributionType(row pgx.Row) (models.ContributionType, error) {
	var m models.ContributionType
	err := row.Scan(
		&m.ContributionTypeID,
		&m.Name,
		&m.Code,
		&m.Scope,
		&m.OwnerEntityID,
		&m.MissionPct,
		&m.AreaPct,
		&m.DistrictPct,
		&m.BranchPct,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveContributionType persists a new contribution type.
func (r *PgxContributionTypeRepository) SaveContributionType(ctx context.Context, ct domain.ContributionType) error {
	m := mapping.ToModelContributionType(ct)
	query := `
		INSERT INTO contribution_types (` + contributionTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContributionTypeID,
		m.Name,
		m.Code,
		m.Scope,
		m.OwnerEntityID,
		m.MissionPct,
		m.AreaPct,
		m.DistrictPct,
		m.BranchPct,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to insert contribution type "+m.ContributionTypeID, err)
	}
	return nil
}

// UpdateContributionType updates name, percentages and the active flag.
func (r *PgxContributionTypeRepository) UpdateContributionType(ctx context.Context, ct domain.ContributionType) error {
	m := mapping.ToModelContributionType(ct)
	query := `
		UPDATE contribution_types
		SET name = $2, mission_pct = $3, area_pct = $4, district_pct = $5, branch_pct = $6,
		    is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE contribution_type_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContributionTypeID,
		m.Name,
		m.MissionPct,
		m.AreaPct,
		m.DistrictPct,
		m.BranchPct,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update contribution type "+m.ContributionTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindContributionTypeByID retrieves a contribution type by its ID.
func (r *PgxContributionTypeRepository) FindContributionTypeByID(ctx context.Context, contributionTypeID string) (*domain.ContributionType, error) {
	query := `SELECT ` + contributionTypeColumns + ` FROM contribution_types WHERE contribution_type_id = $1;`
	m, err := scanContributionType(r.Pool.QueryRow(ctx, query, contributionTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contribution type by ID "+contributionTypeID, err)
	}
	d := mapping.ToDomainContributionType(m)
	return &d, nil
}

// FindContributionTypeByCode retrieves a contribution type by its unique code.
func (r *PgxContributionTypeRepository) FindContributionTypeByCode(ctx context.Context, code string) (*domain.ContributionType, error) {
	query := `SELECT ` + contributionTypeColumns + ` FROM contribution_types WHERE code = $1;`
	m, err := scanContributionType(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contribution type by code "+code, err)
	}
	d := mapping.ToDomainContributionType(m)
	return &d, nil
}

// ListContributionTypes retrieves all contribution types, optionally including inactive ones.
func (r *PgxContributionTypeRepository) ListContributionTypes(ctx context.Context, includeInactive bool) ([]domain.ContributionType, error) {
	query := `SELECT ` + contributionTypeColumns + ` FROM contribution_types`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contribution types", err)
	}
	defer rows.Close()

	types := []models.ContributionType{}
	for rows.Next() {
		m, err := scanContributionType(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contribution type row", err)
		}
		types = append(types, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contribution type rows", err)
	}

	return mapping.ToDomainContributionTypeSlice(types), nil
}
