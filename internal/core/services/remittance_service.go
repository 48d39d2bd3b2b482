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
)

var (
	ErrDestinationLevel    = errors.New("remittance destination must be an area or district")
	ErrDestinationLineage  = errors.New("remittance destination must be an ancestor of the branch")
	ErrRemittanceExists    = errors.New("a remittance already exists for this branch, destination and period")
	ErrBadPeriod           = errors.New("month must be between 1 and 12")
	ErrPaymentNotAccepted  = errors.New("remittance no longer accepts payment")
	ErrNotSent             = errors.New("only a sent remittance can be verified")
	ErrPaymentMethodNeeded = errors.New("payment method is required")
)

// remittanceService tracks per-period obligations of branches toward their
// ancestors and the ledger effects of settling them.
type remittanceService struct {
	remittanceRepo portsrepo.RemittanceRepositoryFacade
	hierarchyRepo  portsrepo.HierarchyRepositoryFacade
	notifier       portssvc.NotificationDispatcher
}

// NewRemittanceService creates a new RemittanceService.
func NewRemittanceService(
	remittanceRepo portsrepo.RemittanceRepositoryFacade,
	hierarchyRepo portsrepo.HierarchyRepositoryFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.RemittanceSvcFacade {
	return &remittanceService{
		remittanceRepo: remittanceRepo,
		hierarchyRepo:  hierarchyRepo,
		notifier:       notifier,
	}
}

var _ portssvc.RemittanceSvcFacade = (*remittanceService)(nil)

// destinationLineage returns the area and district ids that scope a
// remittance destination. An area destination has no district above it, so a
// district executive under that area gets no claim on it; a district
// destination sits under the branch's area.
func destinationLineage(destLevel domain.HierarchyLevel, destinationID, branchAreaID string) (areaID, districtID string) {
	if destLevel == domain.LevelArea {
		return destinationID, ""
	}
	return branchAreaID, destinationID
}

// ScheduleRemittance creates a Pending obligation for a branch toward one of
// its ancestors for a given month and year.
func (s *remittanceService) ScheduleRemittance(ctx context.Context, req dto.ScheduleRemittanceRequest, actor domain.Actor) (*domain.HierarchyRemittance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AmountDue.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBadPeriod)
	}

	destLevel := domain.HierarchyLevel(req.DestinationLevel)
	if destLevel != domain.LevelArea && destLevel != domain.LevelDistrict {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDestinationLevel)
	}

	branch, err := s.hierarchyRepo.FindBranchByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: branch %s not found", apperrors.ErrValidation, req.BranchID)
		}
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}

	// The destination must sit on the branch's own lineage; a branch owes
	// nothing to a district or area it does not belong to.
	switch destLevel {
	case domain.LevelArea:
		if branch.AreaID != req.DestinationID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConsistency, ErrDestinationLineage)
		}
	case domain.LevelDistrict:
		if branch.DistrictID != req.DestinationID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConsistency, ErrDestinationLineage)
		}
	}

	destAreaID, destDistrictID := destinationLineage(destLevel, req.DestinationID, branch.AreaID)
	if !actorCoversEntity(actor, destLevel, req.DestinationID, destAreaID, destDistrictID) {
		return nil, fmt.Errorf("%w: actor %s may not schedule remittances toward %s/%s", apperrors.ErrForbidden, actor.UserID, destLevel, req.DestinationID)
	}

	exists, err := s.remittanceRepo.ExistsForPeriod(ctx, req.BranchID, destLevel, req.DestinationID, req.Month, req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing remittance: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrRemittanceExists)
	}

	now := time.Now().UTC()
	remittance := domain.HierarchyRemittance{
		RemittanceID:     uuid.NewString(),
		BranchID:         req.BranchID,
		DestinationLevel: destLevel,
		DestinationID:    req.DestinationID,
		Month:            req.Month,
		Year:             req.Year,
		AmountDue:        req.AmountDue.Round(2),
		AmountSent:       decimal.Zero,
		Status:           domain.RemittancePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.remittanceRepo.SaveRemittance(ctx, remittance); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save remittance", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to save remittance: %w", err)
	}

	logger.Info("Remittance scheduled", slog.String("remittance_id", remittance.RemittanceID),
		slog.String("branch_id", req.BranchID), slog.Int("month", req.Month), slog.Int("year", req.Year))
	return &remittance, nil
}

// RecordPayment transitions Pending/Overdue -> Sent and posts the outflow
// entry at the branch. One payment per obligation: a partial amount is
// allowed, but once Sent the record accepts no further payments and the
// shortfall stays visible as Outstanding.
func (s *remittanceService) RecordPayment(ctx context.Context, remittanceID string, req dto.RecordPaymentRequest, actor domain.Actor) (*domain.HierarchyRemittance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AmountSent.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentMethodNeeded)
	}

	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find remittance %s: %w", remittanceID, err)
	}
	if !remittance.AcceptsPayment() {
		return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, ErrPaymentNotAccepted, remittance.Status)
	}

	branch, err := s.hierarchyRepo.FindBranchByID(ctx, remittance.BranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}
	if !actorCoversBranch(actor, branch) {
		return nil, fmt.Errorf("%w: actor %s may not record payments for branch %s", apperrors.ErrForbidden, actor.UserID, branch.BranchID)
	}

	now := time.Now().UTC()
	amount := req.AmountSent.Round(2)
	paymentDate := req.PaymentDate

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		EntryType:     domain.EntryCash,
		OwnerLevel:    domain.LevelBranch,
		OwnerEntityID: remittance.BranchID,
		Amount:        amount.Neg(),
		SourceType:    domain.SourceRemittanceSent,
		EntryDate:     paymentDate,
		Reference:     fmt.Sprintf("REM-%s", remittance.RemittanceID),
		Status:        domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	remittance.AmountSent = remittance.AmountSent.Add(amount)
	remittance.PaymentDate = &paymentDate
	remittance.PaymentMethod = req.PaymentMethod
	remittance.PaymentReference = req.PaymentReference
	remittance.PaymentProofURL = req.PaymentProofURL
	remittance.Status = domain.RemittanceSent
	remittance.SentLedgerEntryID = entry.EntryID
	remittance.LastUpdatedAt = now
	remittance.LastUpdatedBy = actor.UserID

	if err := s.remittanceRepo.RecordPayment(ctx, *remittance, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to record remittance payment", slog.String("error", err.Error()), slog.String("remittance_id", remittanceID))
		}
		return nil, fmt.Errorf("failed to record payment for remittance %s: %w", remittanceID, err)
	}

	s.notifier.Dispatch(ctx, portssvc.NotificationEvent{
		EventType:   "remittance.sent",
		SubjectKind: "hierarchy_remittance",
		SubjectID:   remittance.RemittanceID,
		ActorID:     actor.UserID,
		OccurredAt:  now,
	})

	logger.Info("Remittance payment recorded", slog.String("remittance_id", remittanceID),
		slog.String("amount", amount.String()))
	return remittance, nil
}

// VerifyRemittance transitions Sent -> Verified and posts the inflow entry at
// the destination for the amount actually sent. Only an executive of the
// destination (or a mission admin) may verify.
func (s *remittanceService) VerifyRemittance(ctx context.Context, remittanceID string, actor domain.Actor) (*domain.HierarchyRemittance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find remittance %s: %w", remittanceID, err)
	}
	if remittance.Status != domain.RemittanceSent {
		return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrConflict, ErrNotSent, remittance.Status)
	}

	branch, err := s.hierarchyRepo.FindBranchByID(ctx, remittance.BranchID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}
	destAreaID, destDistrictID := destinationLineage(remittance.DestinationLevel, remittance.DestinationID, branch.AreaID)
	if !actorCoversEntity(actor, remittance.DestinationLevel, remittance.DestinationID, destAreaID, destDistrictID) {
		return nil, fmt.Errorf("%w: actor %s may not verify remittances for %s/%s", apperrors.ErrForbidden, actor.UserID, remittance.DestinationLevel, remittance.DestinationID)
	}

	now := time.Now().UTC()
	entryDate := now
	if remittance.PaymentDate != nil {
		entryDate = *remittance.PaymentDate
	}

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		EntryType:     domain.EntryCash,
		OwnerLevel:    remittance.DestinationLevel,
		OwnerEntityID: remittance.DestinationID,
		Amount:        remittance.AmountSent,
		SourceType:    domain.SourceRemittanceReceived,
		EntryDate:     entryDate,
		Reference:     fmt.Sprintf("REM-%s", remittance.RemittanceID),
		Status:        domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.remittanceRepo.VerifyRemittance(ctx, remittanceID, actor.UserID, now, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to verify remittance", slog.String("error", err.Error()), slog.String("remittance_id", remittanceID))
		}
		return nil, fmt.Errorf("failed to verify remittance %s: %w", remittanceID, err)
	}

	remittance.Status = domain.RemittanceVerified
	remittance.VerifierID = actor.UserID
	remittance.VerifiedAt = &now
	remittance.RecvLedgerEntryID = entry.EntryID
	remittance.LastUpdatedAt = now
	remittance.LastUpdatedBy = actor.UserID

	s.notifier.Dispatch(ctx, portssvc.NotificationEvent{
		EventType:   "remittance.verified",
		SubjectKind: "hierarchy_remittance",
		SubjectID:   remittance.RemittanceID,
		ActorID:     actor.UserID,
		OccurredAt:  now,
	})

	logger.Info("Remittance verified", slog.String("remittance_id", remittanceID))
	return remittance, nil
}

// MarkOverdue sweeps Pending remittances past their due date into Overdue.
// The guarded update makes concurrent sweeps converge on the same result.
func (s *remittanceService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.remittanceRepo.MarkOverdue(ctx, asOf)
	if err != nil {
		logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to mark overdue remittances: %w", err)
	}
	if count > 0 {
		logger.Info("Remittances marked overdue", slog.Int64("count", count))
	}
	return count, nil
}

// GetRemittanceByID retrieves a single remittance.
func (s *remittanceService) GetRemittanceByID(ctx context.Context, remittanceID string) (*domain.HierarchyRemittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find remittance %s: %w", remittanceID, err)
	}
	return remittance, nil
}

// ListRemittances retrieves remittances matching the filter.
func (s *remittanceService) ListRemittances(ctx context.Context, params dto.ListRemittancesParams) ([]domain.HierarchyRemittance, error) {
	filter := portsrepo.RemittanceFilter{
		BranchID: params.BranchID,
		Month:    params.Month,
		Year:     params.Year,
	}
	if params.Status != nil {
		status := domain.RemittanceStatus(*params.Status)
		filter.Status = &status
	}
	return s.remittanceRepo.ListRemittances(ctx, filter)
}
