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
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrBranchRequired      = errors.New("branch is required for branch-level records")
	ErrBranchNotPermitted  = errors.New("branch must be absent for mission-level records")
	ErrOpeningBalanceLevel = errors.New("opening balances exist only at mission and branch levels")
	ErrBalanceExists       = errors.New("an opening balance already exists for this owner and contribution type")
	ErrRejectReasonMissing = errors.New("rejection reason is required")
)

// openingBalanceService is the approval-gated entry of pre-system cash.
type openingBalanceService struct {
	obRepo        portsrepo.OpeningBalanceRepositoryFacade
	ctRepo        portsrepo.ContributionTypeRepositoryFacade
	hierarchyRepo portsrepo.HierarchyRepositoryFacade
	notifier      portssvc.NotificationDispatcher
}

// NewOpeningBalanceService creates a new OpeningBalanceService.
func NewOpeningBalanceService(
	obRepo portsrepo.OpeningBalanceRepositoryFacade,
	ctRepo portsrepo.ContributionTypeRepositoryFacade,
	hierarchyRepo portsrepo.HierarchyRepositoryFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.OpeningBalanceSvcFacade {
	return &openingBalanceService{
		obRepo:        obRepo,
		ctRepo:        ctRepo,
		hierarchyRepo: hierarchyRepo,
		notifier:      notifier,
	}
}

var _ portssvc.OpeningBalanceSvcFacade = (*openingBalanceService)(nil)

// SubmitOpeningBalance creates a Pending opening balance after validating
// the level/branch pairing and the uniqueness rule.
func (s *openingBalanceService) SubmitOpeningBalance(ctx context.Context, req dto.SubmitOpeningBalanceRequest, actor domain.Actor) (*domain.OpeningBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	level := domain.HierarchyLevel(req.Level)
	switch level {
	case domain.LevelMission:
		if req.BranchID != "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBranchNotPermitted)
		}
		if !actor.IsMissionAdmin() {
			return nil, fmt.Errorf("%w: only mission admins submit mission opening balances", apperrors.ErrForbidden)
		}
	case domain.LevelBranch:
		if req.BranchID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBranchRequired)
		}
		branch, err := s.hierarchyRepo.FindBranchByID(ctx, req.BranchID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: branch %s not found", apperrors.ErrValidation, req.BranchID)
			}
			return nil, fmt.Errorf("failed to resolve branch: %w", err)
		}
		if !actorCoversBranch(actor, branch) {
			return nil, fmt.Errorf("%w: actor %s may not submit for branch %s", apperrors.ErrForbidden, actor.UserID, req.BranchID)
		}
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOpeningBalanceLevel)
	}

	if _, err := s.ctRepo.FindContributionTypeByID(ctx, req.ContributionTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: contribution type %s not found", apperrors.ErrValidation, req.ContributionTypeID)
		}
		return nil, fmt.Errorf("failed to resolve contribution type: %w", err)
	}

	// A prior Rejected record does not block resubmission; Pending or
	// Approved does.
	exists, err := s.obRepo.ExistsNonRejected(ctx, level, req.BranchID, req.ContributionTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check opening balance uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrBalanceExists)
	}

	now := time.Now().UTC()
	ob := domain.OpeningBalance{
		OpeningBalanceID:   uuid.NewString(),
		Level:              level,
		BranchID:           req.BranchID,
		Amount:             req.Amount.Round(2),
		ContributionTypeID: req.ContributionTypeID,
		Date:               req.Date,
		Description:        req.Description,
		Status:             domain.OpeningBalancePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.obRepo.SaveOpeningBalance(ctx, ob); err != nil {
		logger.Error("Failed to save opening balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save opening balance: %w", err)
	}

	logger.Info("Opening balance submitted", slog.String("opening_balance_id", ob.OpeningBalanceID), slog.String("level", string(level)))
	return &ob, nil
}

// ApproveOpeningBalance transitions Pending -> Approved and posts the cash
// entry in one transaction. The second of two concurrent approvals observes a
// non-Pending status and fails with ErrConflict.
func (s *openingBalanceService) ApproveOpeningBalance(ctx context.Context, openingBalanceID string, actor domain.Actor) (*domain.OpeningBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsMissionAdmin() {
		return nil, fmt.Errorf("%w: only mission admins approve opening balances", apperrors.ErrForbidden)
	}

	ob, err := s.obRepo.FindOpeningBalanceByID(ctx, openingBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find opening balance %s: %w", openingBalanceID, err)
	}
	if !ob.IsPending() {
		return nil, fmt.Errorf("%w: opening balance %s is %s, not pending", apperrors.ErrConflict, openingBalanceID, ob.Status)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		EntryType:          domain.EntryCash,
		OwnerLevel:         ob.Level,
		OwnerEntityID:      ob.BranchID,
		Amount:             ob.Amount,
		SourceType:         domain.SourceOpeningBalance,
		ContributionTypeID: ob.ContributionTypeID,
		EntryDate:          ob.Date,
		Reference:          fmt.Sprintf("OPB-%s", ob.OpeningBalanceID),
		Status:             domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	// Status guard and ledger post are one transaction inside the repository.
	if err := s.obRepo.ApproveOpeningBalance(ctx, openingBalanceID, actor.UserID, now, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to approve opening balance", slog.String("error", err.Error()), slog.String("opening_balance_id", openingBalanceID))
		}
		return nil, fmt.Errorf("failed to approve opening balance %s: %w", openingBalanceID, err)
	}

	ob.Status = domain.OpeningBalanceApproved
	ob.ApproverID = actor.UserID
	ob.ApprovedAt = &now
	ob.LedgerEntryID = entry.EntryID
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = actor.UserID

	s.notifier.Dispatch(ctx, portssvc.NotificationEvent{
		EventType:   "opening_balance.approved",
		SubjectKind: "opening_balance",
		SubjectID:   ob.OpeningBalanceID,
		ActorID:     actor.UserID,
		OccurredAt:  now,
	})

	logger.Info("Opening balance approved", slog.String("opening_balance_id", openingBalanceID), slog.String("ledger_entry_id", entry.EntryID))
	return ob, nil
}

// RejectOpeningBalance transitions Pending -> Rejected. Terminal, no ledger effect.
func (s *openingBalanceService) RejectOpeningBalance(ctx context.Context, openingBalanceID string, reason string, actor domain.Actor) (*domain.OpeningBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsMissionAdmin() {
		return nil, fmt.Errorf("%w: only mission admins reject opening balances", apperrors.ErrForbidden)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrRejectReasonMissing)
	}

	ob, err := s.obRepo.FindOpeningBalanceByID(ctx, openingBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find opening balance %s: %w", openingBalanceID, err)
	}
	if !ob.IsPending() {
		return nil, fmt.Errorf("%w: opening balance %s is %s, not pending", apperrors.ErrConflict, openingBalanceID, ob.Status)
	}

	now := time.Now().UTC()
	if err := s.obRepo.RejectOpeningBalance(ctx, openingBalanceID, reason, actor.UserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to reject opening balance", slog.String("error", err.Error()), slog.String("opening_balance_id", openingBalanceID))
		}
		return nil, fmt.Errorf("failed to reject opening balance %s: %w", openingBalanceID, err)
	}

	ob.Status = domain.OpeningBalanceRejected
	ob.RejectionReason = reason
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = actor.UserID

	s.notifier.Dispatch(ctx, portssvc.NotificationEvent{
		EventType:   "opening_balance.rejected",
		SubjectKind: "opening_balance",
		SubjectID:   ob.OpeningBalanceID,
		ActorID:     actor.UserID,
		OccurredAt:  now,
	})

	logger.Info("Opening balance rejected", slog.String("opening_balance_id", openingBalanceID))
	return ob, nil
}

// GetOpeningBalanceByID retrieves a single opening balance.
func (s *openingBalanceService) GetOpeningBalanceByID(ctx context.Context, openingBalanceID string) (*domain.OpeningBalance, error) {
	ob, err := s.obRepo.FindOpeningBalanceByID(ctx, openingBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find opening balance %s: %w", openingBalanceID, err)
	}
	return ob, nil
}

// ListOpeningBalances retrieves opening balances matching the filter.
func (s *openingBalanceService) ListOpeningBalances(ctx context.Context, params dto.ListOpeningBalancesParams) ([]domain.OpeningBalance, error) {
	filter := portsrepo.OpeningBalanceFilter{}
	if params.Level != nil {
		level := domain.HierarchyLevel(*params.Level)
		filter.Level = &level
	}
	if params.BranchID != nil {
		filter.BranchID = params.BranchID
	}
	if params.Status != nil {
		status := domain.OpeningBalanceStatus(*params.Status)
		filter.Status = &status
	}
	return s.obRepo.ListOpeningBalances(ctx, filter)
}
