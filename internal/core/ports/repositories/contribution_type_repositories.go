package repositories

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// ContributionTypeReader defines read operations for contribution types.
type ContributionTypeReader interface {
	// FindContributionTypeByID retrieves a contribution type by its identifier.
	FindContributionTypeByID(ctx context.Context, contributionTypeID string) (*domain.ContributionType, error)

	// FindContributionTypeByCode retrieves a contribution type by its unique code.
	FindContributionTypeByCode(ctx context.Context, code string) (*domain.ContributionType, error)

	// ListContributionTypes retrieves all contribution types, optionally
	// including deactivated ones.
	ListContributionTypes(ctx context.Context, includeInactive bool) ([]domain.ContributionType, error)
}

// ContributionTypeWriter defines write operations for contribution types.
type ContributionTypeWriter interface {
	// SaveContributionType persists a new contribution type.
	SaveContributionType(ctx context.Context, ct domain.ContributionType) error

	// UpdateContributionType updates name, percentages and active flag.
	UpdateContributionType(ctx context.Context, ct domain.ContributionType) error
}

// ContributionTypeRepositoryFacade combines all contribution type repository interfaces.
type ContributionTypeRepositoryFacade interface {
	ContributionTypeReader
	ContributionTypeWriter
}
