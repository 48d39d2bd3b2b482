package services

import (
	"context"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/utils/allocation"
	"github.com/shopspring/decimal"
)

// ContributionTypeSvcFacade is the registry of fund types and their
// percentage splits. ResolveVisible is the single place scope visibility is
// computed; every other component must call it rather than re-deriving
// hierarchy logic.
type ContributionTypeSvcFacade interface {
	CreateContributionType(ctx context.Context, req dto.CreateContributionTypeRequest, actor domain.Actor) (*domain.ContributionType, error)
	UpdateContributionType(ctx context.Context, contributionTypeID string, req dto.UpdateContributionTypeRequest, actor domain.Actor) (*domain.ContributionType, error)
	DeactivateContributionType(ctx context.Context, contributionTypeID string, actor domain.Actor) error
	GetContributionTypeByID(ctx context.Context, contributionTypeID string) (*domain.ContributionType, error)
	ListContributionTypes(ctx context.Context, includeInactive bool) ([]domain.ContributionType, error)
	ResolveVisible(ctx context.Context, scope domain.EntityScope) ([]domain.ContributionType, error)

	// Allocate previews how an amount would split across the four levels per
	// the type's percentages. Nothing is posted.
	Allocate(ctx context.Context, contributionTypeID string, amount decimal.Decimal) (allocation.Split, error)
}
