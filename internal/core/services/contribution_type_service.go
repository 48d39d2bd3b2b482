package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
	"github.com/SscSPs/mission_finance_app/internal/utils/allocation"
)

var (
	ErrSplitNotHundred   = errors.New("allocation percentages must sum to exactly 100")
	ErrOwnerRequired     = errors.New("owner entity is required for non-mission scopes")
	ErrOwnerNotPermitted = errors.New("owner entity must be absent for mission scope")
)

// contributionTypeService is the registry of fund types and their splits.
type contributionTypeService struct {
	ctRepo        portsrepo.ContributionTypeRepositoryFacade
	hierarchyRepo portsrepo.HierarchyRepositoryFacade
}

// NewContributionTypeService creates a new ContributionTypeService.
func NewContributionTypeService(ctRepo portsrepo.ContributionTypeRepositoryFacade, hierarchyRepo portsrepo.HierarchyRepositoryFacade) portssvc.ContributionTypeSvcFacade {
	return &contributionTypeService{
		ctRepo:        ctRepo,
		hierarchyRepo: hierarchyRepo,
	}
}

var _ portssvc.ContributionTypeSvcFacade = (*contributionTypeService)(nil)

// ownerLineage resolves the area/district lineage of an owning entity so
// authorization can be checked against the actor's scope.
func (s *contributionTypeService) ownerLineage(ctx context.Context, scope domain.HierarchyLevel, ownerEntityID string) (areaID, districtID string, err error) {
	switch scope {
	case domain.LevelArea:
		area, err := s.hierarchyRepo.FindAreaByID(ctx, ownerEntityID)
		if err != nil {
			return "", "", err
		}
		return area.AreaID, "", nil
	case domain.LevelDistrict:
		district, err := s.hierarchyRepo.FindDistrictByID(ctx, ownerEntityID)
		if err != nil {
			return "", "", err
		}
		return district.AreaID, district.DistrictID, nil
	case domain.LevelBranch:
		branch, err := s.hierarchyRepo.FindBranchByID(ctx, ownerEntityID)
		if err != nil {
			return "", "", err
		}
		return branch.AreaID, branch.DistrictID, nil
	default:
		return "", "", nil
	}
}

// CreateContributionType registers a new fund type after validating the
// percentage split and the owner/scope pairing.
func (s *contributionTypeService) CreateContributionType(ctx context.Context, req dto.CreateContributionTypeRequest, actor domain.Actor) (*domain.ContributionType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	scope := domain.HierarchyLevel(req.Scope)
	if !scope.IsValid() {
		return nil, fmt.Errorf("%w: unknown scope %q", apperrors.ErrValidation, req.Scope)
	}

	if scope == domain.LevelMission && req.OwnerEntityID != "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOwnerNotPermitted)
	}
	if scope != domain.LevelMission && req.OwnerEntityID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOwnerRequired)
	}

	now := time.Now().UTC()
	ct := domain.ContributionType{
		ContributionTypeID: uuid.NewString(),
		Name:               req.Name,
		Code:               req.Code,
		Scope:              scope,
		OwnerEntityID:      req.OwnerEntityID,
		MissionPct:         req.MissionPct,
		AreaPct:            req.AreaPct,
		DistrictPct:        req.DistrictPct,
		BranchPct:          req.BranchPct,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if !ct.SplitIsValid() {
		return nil, fmt.Errorf("%w: %s (got %s)", apperrors.ErrValidation, ErrSplitNotHundred, ct.SplitSum())
	}

	// Resolve the owner's lineage; this also proves the owner exists.
	if scope != domain.LevelMission {
		areaID, districtID, err := s.ownerLineage(ctx, scope, req.OwnerEntityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: owner entity %s not found at level %s", apperrors.ErrValidation, req.OwnerEntityID, scope)
			}
			return nil, fmt.Errorf("failed to resolve owner entity: %w", err)
		}
		if !actorCoversEntity(actor, scope, req.OwnerEntityID, areaID, districtID) {
			return nil, fmt.Errorf("%w: actor %s may not create types owned by %s", apperrors.ErrForbidden, actor.UserID, req.OwnerEntityID)
		}
	} else if !actor.IsMissionAdmin() {
		return nil, fmt.Errorf("%w: only mission admins create mission-scoped types", apperrors.ErrForbidden)
	}

	if existing, err := s.ctRepo.FindContributionTypeByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: contribution type code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}

	if err := s.ctRepo.SaveContributionType(ctx, ct); err != nil {
		logger.Error("Failed to save contribution type", slog.String("error", err.Error()), slog.String("code", ct.Code))
		return nil, fmt.Errorf("failed to save contribution type: %w", err)
	}

	logger.Info("Contribution type created", slog.String("contribution_type_id", ct.ContributionTypeID), slog.String("code", ct.Code))
	return &ct, nil
}

// UpdateContributionType edits name and/or percentages. The sum-to-100
// invariant is re-checked on every edit.
func (s *contributionTypeService) UpdateContributionType(ctx context.Context, contributionTypeID string, req dto.UpdateContributionTypeRequest, actor domain.Actor) (*domain.ContributionType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ct, err := s.ctRepo.FindContributionTypeByID(ctx, contributionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contribution type %s: %w", contributionTypeID, err)
	}

	if err := s.authorizeForType(ctx, actor, ct); err != nil {
		return nil, err
	}

	if req.Name != nil {
		ct.Name = *req.Name
	}
	if req.MissionPct != nil {
		ct.MissionPct = *req.MissionPct
	}
	if req.AreaPct != nil {
		ct.AreaPct = *req.AreaPct
	}
	if req.DistrictPct != nil {
		ct.DistrictPct = *req.DistrictPct
	}
	if req.BranchPct != nil {
		ct.BranchPct = *req.BranchPct
	}

	if !ct.SplitIsValid() {
		return nil, fmt.Errorf("%w: %s (got %s)", apperrors.ErrValidation, ErrSplitNotHundred, ct.SplitSum())
	}

	ct.LastUpdatedAt = time.Now().UTC()
	ct.LastUpdatedBy = actor.UserID

	if err := s.ctRepo.UpdateContributionType(ctx, *ct); err != nil {
		logger.Error("Failed to update contribution type", slog.String("error", err.Error()), slog.String("contribution_type_id", contributionTypeID))
		return nil, fmt.Errorf("failed to update contribution type: %w", err)
	}

	return ct, nil
}

// DeactivateContributionType soft-deactivates a type. Types referenced by
// ledger history are never hard-deleted.
func (s *contributionTypeService) DeactivateContributionType(ctx context.Context, contributionTypeID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	ct, err := s.ctRepo.FindContributionTypeByID(ctx, contributionTypeID)
	if err != nil {
		return fmt.Errorf("failed to find contribution type %s: %w", contributionTypeID, err)
	}

	if err := s.authorizeForType(ctx, actor, ct); err != nil {
		return err
	}

	if !ct.IsActive {
		return nil // already inactive, no-op
	}

	ct.IsActive = false
	ct.LastUpdatedAt = time.Now().UTC()
	ct.LastUpdatedBy = actor.UserID

	if err := s.ctRepo.UpdateContributionType(ctx, *ct); err != nil {
		logger.Error("Failed to deactivate contribution type", slog.String("error", err.Error()), slog.String("contribution_type_id", contributionTypeID))
		return fmt.Errorf("failed to deactivate contribution type: %w", err)
	}

	logger.Info("Contribution type deactivated", slog.String("contribution_type_id", contributionTypeID))
	return nil
}

func (s *contributionTypeService) authorizeForType(ctx context.Context, actor domain.Actor, ct *domain.ContributionType) error {
	if ct.Scope == domain.LevelMission {
		if !actor.IsMissionAdmin() {
			return fmt.Errorf("%w: only mission admins manage mission-scoped types", apperrors.ErrForbidden)
		}
		return nil
	}
	areaID, districtID, err := s.ownerLineage(ctx, ct.Scope, ct.OwnerEntityID)
	if err != nil {
		return fmt.Errorf("failed to resolve owner entity: %w", err)
	}
	if !actorCoversEntity(actor, ct.Scope, ct.OwnerEntityID, areaID, districtID) {
		return fmt.Errorf("%w: actor %s may not manage type %s", apperrors.ErrForbidden, actor.UserID, ct.Code)
	}
	return nil
}

// GetContributionTypeByID retrieves a single fund type.
func (s *contributionTypeService) GetContributionTypeByID(ctx context.Context, contributionTypeID string) (*domain.ContributionType, error) {
	ct, err := s.ctRepo.FindContributionTypeByID(ctx, contributionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contribution type %s: %w", contributionTypeID, err)
	}
	return ct, nil
}

// ListContributionTypes retrieves all fund types.
func (s *contributionTypeService) ListContributionTypes(ctx context.Context, includeInactive bool) ([]domain.ContributionType, error) {
	return s.ctRepo.ListContributionTypes(ctx, includeInactive)
}

// ResolveVisible returns the active fund types visible to the given scope.
// This is the single place scope-based visibility is computed.
func (s *contributionTypeService) ResolveVisible(ctx context.Context, scope domain.EntityScope) ([]domain.ContributionType, error) {
	all, err := s.ctRepo.ListContributionTypes(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list contribution types: %w", err)
	}

	visible := make([]domain.ContributionType, 0, len(all))
	for _, ct := range all {
		if ct.VisibleTo(scope) {
			visible = append(visible, ct)
		}
	}
	return visible, nil
}

// Allocate splits an amount per the type's percentages. A stored type whose
// percentages no longer sum to 100 is a data fault, not a caller mistake.
func (s *contributionTypeService) Allocate(ctx context.Context, contributionTypeID string, amount decimal.Decimal) (allocation.Split, error) {
	if !amount.IsPositive() {
		return allocation.Split{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	ct, err := s.ctRepo.FindContributionTypeByID(ctx, contributionTypeID)
	if err != nil {
		return allocation.Split{}, fmt.Errorf("failed to find contribution type %s: %w", contributionTypeID, err)
	}

	split, err := allocation.SplitAmount(amount.Round(2), *ct)
	if err != nil {
		return allocation.Split{}, fmt.Errorf("%w: %s", apperrors.ErrConsistency, err)
	}
	return split, nil
}
