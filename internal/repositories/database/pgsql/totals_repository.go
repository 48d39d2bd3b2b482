package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTotalsRepository struct {
	BaseRepository
}

// newPgxTotalsRepository creates a reader over the collaborator-owned
// contribution and expenditure tables. This module never writes them.
func newPgxTotalsRepository(pool *pgxpool.Pool) portsrepo.TotalsRepositoryFacade {
	return &PgxTotalsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTotalsRepository implements portsrepo.TotalsRepositoryFacade
var _ portsrepo.TotalsRepositoryFacade = (*PgxTotalsRepository)(nil)

func (r *PgxTotalsRepository) sumOwnerScoped(ctx context.Context, table string, statusValue string, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM ` + table + `
		WHERE owner_level = $1 AND contribution_type_id = $2 AND status = $3 AND date <= $4
	`
	args := []interface{}{string(ownerLevel), contributionTypeID, statusValue, asOf}
	if ownerEntityID == "" {
		query += ` AND owner_entity_id IS NULL;`
	} else {
		args = append(args, ownerEntityID)
		query += ` AND owner_entity_id = $5;`
	}

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum "+table, err)
	}
	return sum, nil
}

// SumVerifiedContributions sums verified contribution amounts for the owner
// and contribution type up to asOf (inclusive).
func (r *PgxTotalsRepository) SumVerifiedContributions(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error) {
	return r.sumOwnerScoped(ctx, "contributions", "VERIFIED", ownerLevel, ownerEntityID, contributionTypeID, asOf)
}

// SumApprovedExpenditures sums approved expenditure amounts for the owner and
// contribution type up to asOf (inclusive).
func (r *PgxTotalsRepository) SumApprovedExpenditures(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error) {
	return r.sumOwnerScoped(ctx, "expenditures", "APPROVED", ownerLevel, ownerEntityID, contributionTypeID, asOf)
}
