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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHierarchyRepository struct {
	BaseRepository
}

// newPgxHierarchyRepository creates a new repository for the organization tree.
func newPgxHierarchyRepository(pool *pgxpool.Pool) portsrepo.HierarchyRepositoryFacade {
	return &PgxHierarchyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxHierarchyRepository implements portsrepo.HierarchyRepositoryFacade
var _ portsrepo.HierarchyRepositoryFacade = (*PgxHierarchyRepository)(nil)

// FindAreaByID retrieves an area by its ID.
func (r *PgxHierarchyRepository) FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error) {
	query := `
		SELECT area_id, name, code, created_at, created_by, last_updated_at, last_updated_by
		FROM areas
		WHERE area_id = $1;
	`
	var m models.Area
	err := r.Pool.QueryRow(ctx, query, areaID).Scan(
		&m.AreaID,
		&m.Name,
		&m.Code,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find area by ID "+areaID, err)
	}

	d := mapping.ToDomainArea(m)
	return &d, nil
}

// FindDistrictByID retrieves a district by its ID.
func (r *PgxHierarchyRepository) FindDistrictByID(ctx context.Context, districtID string) (*domain.District, error) {
	query := `
		SELECT district_id, area_id, name, code, created_at, created_by, last_updated_at, last_updated_by
		FROM districts
		WHERE district_id = $1;
	`
	var m models.District
	err := r.Pool.QueryRow(ctx, query, districtID).Scan(
		&m.DistrictID,
		&m.AreaID,
		&m.Name,
		&m.Code,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find district by ID "+districtID, err)
	}

	d := mapping.ToDomainDistrict(m)
	return &d, nil
}

// FindBranchByID retrieves a branch with its full lineage. The area is not a
// column on branches; it is resolved through the district join.
func (r *PgxHierarchyRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT b.branch_id, b.district_id, d.area_id, b.name, b.code,
		       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
		FROM branches b
		JOIN districts d ON b.district_id = d.district_id
		WHERE b.branch_id = $1;
	`
	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(
		&m.BranchID,
		&m.DistrictID,
		&m.AreaID,
		&m.Name,
		&m.Code,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch by ID "+branchID, err)
	}

	d := mapping.ToDomainBranch(m)
	return &d, nil
}
