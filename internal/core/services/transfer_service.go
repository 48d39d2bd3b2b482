package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/mission_finance_app/internal/apperrors"
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/internal/dto"
	"github.com/SscSPs/mission_finance_app/internal/middleware"
)

var (
	ErrLevelsNotAdjacent  = errors.New("transfer levels must be adjacent in the hierarchy")
	ErrSameEntity         = errors.New("source and destination must not be the same entity")
	ErrCrossLineage       = errors.New("entities belong to different lineages; flag the transfer cross-lineage to proceed")
	ErrEntityRequired     = errors.New("entity reference is required for non-mission levels")
	ErrEntityNotPermitted = errors.New("entity reference must be absent for mission levels")
)

// transferEndpoint is one side of a transfer with its lineage resolved.
type transferEndpoint struct {
	level      domain.HierarchyLevel
	entityID   string
	areaID     string
	districtID string
}

// transferService validates and approval-gates fund movement between
// adjacent hierarchy levels.
type transferService struct {
	transferRepo  portsrepo.TransferRepositoryFacade
	hierarchyRepo portsrepo.HierarchyRepositoryFacade
	notifier      portssvc.NotificationDispatcher
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryFacade,
	hierarchyRepo portsrepo.HierarchyRepositoryFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo:  transferRepo,
		hierarchyRepo: hierarchyRepo,
		notifier:      notifier,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// resolveEndpoint validates the level/entity pairing of one transfer side and
// resolves the entity's lineage.
func (s *transferService) resolveEndpoint(ctx context.Context, level domain.HierarchyLevel, entityID string) (*transferEndpoint, error) {
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown level %q", apperrors.ErrValidation, level)
	}
	if level == domain.LevelMission {
		if entityID != "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntityNotPermitted)
		}
		return &transferEndpoint{level: level}, nil
	}
	if entityID == "" {
		return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrEntityRequired, level)
	}

	ep := &transferEndpoint{level: level, entityID: entityID}
	switch level {
	case domain.LevelArea:
		area, err := s.hierarchyRepo.FindAreaByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: area %s not found", apperrors.ErrValidation, entityID)
			}
			return nil, fmt.Errorf("failed to resolve area: %w", err)
		}
		ep.areaID = area.AreaID
	case domain.LevelDistrict:
		district, err := s.hierarchyRepo.FindDistrictByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: district %s not found", apperrors.ErrValidation, entityID)
			}
			return nil, fmt.Errorf("failed to resolve district: %w", err)
		}
		ep.areaID = district.AreaID
		ep.districtID = district.DistrictID
	case domain.LevelBranch:
		branch, err := s.hierarchyRepo.FindBranchByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: branch %s not found", apperrors.ErrValidation, entityID)
			}
			return nil, fmt.Errorf("failed to resolve branch: %w", err)
		}
		ep.areaID = branch.AreaID
		ep.districtID = branch.DistrictID
	}
	return ep, nil
}

// sameLineage reports whether the two endpoints sit in one sub-tree. Transfers
// to or from Mission have no lineage constraint.
func sameLineage(a, b *transferEndpoint) bool {
	if a.level == domain.LevelMission || b.level == domain.LevelMission {
		return true
	}
	// Both endpoints are below Mission; the shallower one's lineage fields
	// must match the deeper one's.
	if a.areaID != b.areaID {
		return false
	}
	if a.districtID != "" && b.districtID != "" && a.districtID != b.districtID {
		return false
	}
	return true
}

// ProposeTransfer validates the structural rules and creates a Pending
// transfer. Each violation names the specific rule broken.
func (s *transferService) ProposeTransfer(ctx context.Context, req dto.ProposeTransferRequest, actor domain.Actor) (*domain.HierarchyTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	sourceLevel := domain.HierarchyLevel(req.SourceLevel)
	destLevel := domain.HierarchyLevel(req.DestinationLevel)

	if !domain.LevelsAdjacent(sourceLevel, destLevel) {
		return nil, fmt.Errorf("%w: %s (%s -> %s)", apperrors.ErrValidation, ErrLevelsNotAdjacent, sourceLevel, destLevel)
	}

	source, err := s.resolveEndpoint(ctx, sourceLevel, req.SourceEntityID)
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveEndpoint(ctx, destLevel, req.DestinationEntityID)
	if err != nil {
		return nil, err
	}

	if source.level == destination.level && source.entityID == destination.entityID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameEntity)
	}

	// Lineage check: movement between adjacent levels stays inside one
	// sub-tree unless explicitly flagged as a cross-lineage reallocation.
	crossed := !sameLineage(source, destination)
	if crossed && !req.CrossLineage {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConsistency, ErrCrossLineage)
	}

	if !actorCoversEntity(actor, source.level, source.entityID, source.areaID, source.districtID) {
		return nil, fmt.Errorf("%w: actor %s may not move funds out of %s/%s", apperrors.ErrForbidden, actor.UserID, source.level, source.entityID)
	}

	now := time.Now().UTC()
	transfer := domain.HierarchyTransfer{
		TransferID:          uuid.NewString(),
		SourceLevel:         sourceLevel,
		SourceEntityID:      req.SourceEntityID,
		DestinationLevel:    destLevel,
		DestinationEntityID: req.DestinationEntityID,
		Amount:              req.Amount.Round(2),
		Date:                req.Date,
		Purpose:             req.Purpose,
		Reference:           req.Reference,
		CrossLineage:        crossed,
		Status:              domain.TransferPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		logger.Error("Failed to save transfer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer proposed", slog.String("transfer_id", transfer.TransferID),
		slog.String("source", string(sourceLevel)), slog.String("destination", string(destLevel)),
		slog.Bool("cross_lineage", crossed))
	return &transfer, nil
}

// ApproveTransfer transitions Pending -> Completed and posts the paired
// TransferOut/TransferIn entries. The two-entry post succeeds or fails
// together inside the repository transaction.
func (s *transferService) ApproveTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.HierarchyTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsMissionAdmin() {
		return nil, fmt.Errorf("%w: only mission admins approve transfers", apperrors.ErrForbidden)
	}

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if !transfer.IsPending() {
		return nil, fmt.Errorf("%w: transfer %s is %s, not pending", apperrors.ErrConflict, transferID, transfer.Status)
	}

	now := time.Now().UTC()
	reference := fmt.Sprintf("TRF-%s", transfer.TransferID)

	outEntry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		EntryType:     domain.EntryCash,
		OwnerLevel:    transfer.SourceLevel,
		OwnerEntityID: transfer.SourceEntityID,
		Amount:        transfer.Amount.Neg(),
		SourceType:    domain.SourceTransferOut,
		EntryDate:     transfer.Date,
		Reference:     reference,
		Status:        domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	inEntry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		EntryType:     domain.EntryCash,
		OwnerLevel:    transfer.DestinationLevel,
		OwnerEntityID: transfer.DestinationEntityID,
		Amount:        transfer.Amount,
		SourceType:    domain.SourceTransferIn,
		EntryDate:     transfer.Date,
		Reference:     reference,
		Status:        domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.transferRepo.CompleteTransfer(ctx, transferID, actor.UserID, now, outEntry, inEntry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to complete transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		}
		return nil, fmt.Errorf("failed to complete transfer %s: %w", transferID, err)
	}

	transfer.Status = domain.TransferCompleted
	transfer.ApproverID = actor.UserID
	transfer.ApprovedAt = &now
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = actor.UserID

	s.notifier.Dispatch(ctx, portssvc.NotificationEvent{
		EventType:   "transfer.completed",
		SubjectKind: "hierarchy_transfer",
		SubjectID:   transfer.TransferID,
		ActorID:     actor.UserID,
		OccurredAt:  now,
	})

	logger.Info("Transfer completed", slog.String("transfer_id", transferID))
	return transfer, nil
}

// CancelTransfer transitions Pending -> Cancelled. Terminal, no ledger effect.
func (s *transferService) CancelTransfer(ctx context.Context, transferID string, actor domain.Actor) (*domain.HierarchyTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if !transfer.IsPending() {
		return nil, fmt.Errorf("%w: transfer %s is %s, not pending", apperrors.ErrConflict, transferID, transfer.Status)
	}

	source, err := s.resolveEndpoint(ctx, transfer.SourceLevel, transfer.SourceEntityID)
	if err != nil {
		return nil, err
	}
	if !actorCoversEntity(actor, source.level, source.entityID, source.areaID, source.districtID) {
		return nil, fmt.Errorf("%w: actor %s may not cancel transfer %s", apperrors.ErrForbidden, actor.UserID, transferID)
	}

	now := time.Now().UTC()
	if err := s.transferRepo.CancelTransfer(ctx, transferID, actor.UserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to cancel transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		}
		return nil, fmt.Errorf("failed to cancel transfer %s: %w", transferID, err)
	}

	transfer.Status = domain.TransferCancelled
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = actor.UserID

	logger.Info("Transfer cancelled", slog.String("transfer_id", transferID))
	return transfer, nil
}

// GetTransferByID retrieves a single transfer.
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.HierarchyTransfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return transfer, nil
}

// ListTransfers retrieves transfers matching the filter.
func (s *transferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) ([]domain.HierarchyTransfer, error) {
	filter := portsrepo.TransferFilter{}
	if params.Status != nil {
		status := domain.TransferStatus(*params.Status)
		filter.Status = &status
	}
	if params.SourceLevel != nil {
		level := domain.HierarchyLevel(*params.SourceLevel)
		filter.SourceLevel = &level
	}
	filter.EntityID = params.EntityID
	return s.transferRepo.ListTransfers(ctx, filter)
}
