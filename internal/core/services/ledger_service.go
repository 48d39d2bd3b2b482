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
	ErrZeroAmount        = errors.New("ledger entry amount must not be zero")
	ErrBadEntryCombo     = errors.New("entry type and source type combination is not allowed")
	ErrOwnerEntityNeeded = errors.New("owner entity is required for non-mission owners")
	ErrOwnerEntityExtra  = errors.New("owner entity must be absent for mission owners")
	ErrAlreadyReversed   = errors.New("ledger entry is already reversed")
)

// ledgerService is the append-only store of financial facts. Every balance in
// the system is derived from the entries it holds.
type ledgerService struct {
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	hierarchyRepo portsrepo.HierarchyRepositoryFacade
	ctRepo        portsrepo.ContributionTypeRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, hierarchyRepo portsrepo.HierarchyRepositoryFacade, ctRepo portsrepo.ContributionTypeRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:    ledgerRepo,
		hierarchyRepo: hierarchyRepo,
		ctRepo:        ctRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateOwner checks level/entity pairing and that the entity exists.
func (s *ledgerService) validateOwner(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string) error {
	if ownerLevel == domain.LevelMission {
		if ownerEntityID != "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOwnerEntityExtra)
		}
		return nil
	}
	if ownerEntityID == "" {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrOwnerEntityNeeded)
	}

	var err error
	switch ownerLevel {
	case domain.LevelArea:
		_, err = s.hierarchyRepo.FindAreaByID(ctx, ownerEntityID)
	case domain.LevelDistrict:
		_, err = s.hierarchyRepo.FindDistrictByID(ctx, ownerEntityID)
	case domain.LevelBranch:
		_, err = s.hierarchyRepo.FindBranchByID(ctx, ownerEntityID)
	default:
		return fmt.Errorf("%w: unknown owner level %q", apperrors.ErrValidation, ownerLevel)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: owner entity %s not found at level %s", apperrors.ErrValidation, ownerEntityID, ownerLevel)
		}
		return fmt.Errorf("failed to resolve owner entity: %w", err)
	}
	return nil
}

// AppendEntry validates and commits one ledger entry.
func (s *ledgerService) AppendEntry(ctx context.Context, req dto.AppendLedgerEntryRequest, actor domain.Actor) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrZeroAmount)
	}

	entryType := domain.EntryType(req.EntryType)
	sourceType := domain.SourceType(req.SourceType)
	ownerLevel := domain.HierarchyLevel(req.OwnerLevel)

	if !domain.ValidEntryCombination(entryType, sourceType) {
		return nil, fmt.Errorf("%w: %s (%s/%s)", apperrors.ErrValidation, ErrBadEntryCombo, entryType, sourceType)
	}

	if err := s.validateOwner(ctx, ownerLevel, req.OwnerEntityID); err != nil {
		return nil, err
	}

	if req.ContributionTypeID != "" {
		if _, err := s.ctRepo.FindContributionTypeByID(ctx, req.ContributionTypeID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: contribution type %s not found", apperrors.ErrValidation, req.ContributionTypeID)
			}
			return nil, fmt.Errorf("failed to resolve contribution type: %w", err)
		}
	}

	if !actor.ScopedTo(ownerLevel, req.OwnerEntityID) {
		return nil, fmt.Errorf("%w: actor %s may not post to owner %s/%s", apperrors.ErrForbidden, actor.UserID, ownerLevel, req.OwnerEntityID)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		EntryType:          entryType,
		OwnerLevel:         ownerLevel,
		OwnerEntityID:      req.OwnerEntityID,
		Amount:             req.Amount.Round(2),
		SourceType:         sourceType,
		ContributionTypeID: req.ContributionTypeID,
		EntryDate:          req.EntryDate,
		Reference:          req.Reference,
		Status:             domain.EntryActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Failed to append ledger entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	logger.Info("Ledger entry appended", slog.String("entry_id", entry.EntryID), slog.String("source_type", string(entry.SourceType)))
	return &entry, nil
}

// ReverseEntry marks an entry Reversed and appends the compensating entry.
// Returns (original, compensating).
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}

	if original.Status == domain.EntryReversed {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyReversed)
	}

	if !actor.ScopedTo(original.OwnerLevel, original.OwnerEntityID) {
		return nil, nil, fmt.Errorf("%w: actor %s may not reverse entries of owner %s/%s", apperrors.ErrForbidden, actor.UserID, original.OwnerLevel, original.OwnerEntityID)
	}

	now := time.Now().UTC()
	compensating := domain.LedgerEntry{
		EntryID:            uuid.NewString(),
		EntryType:          original.EntryType,
		OwnerLevel:         original.OwnerLevel,
		OwnerEntityID:      original.OwnerEntityID,
		Amount:             original.Amount.Neg(),
		SourceType:         original.SourceType,
		ContributionTypeID: original.ContributionTypeID,
		EntryDate:          now,
		Reference:          fmt.Sprintf("Reversal of %s", original.Reference),
		Status:             domain.EntryActive,
		ReversesEntryID:    original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.ledgerRepo.ReverseEntry(ctx, *original, compensating); err != nil {
		logger.Error("Failed to reverse ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, nil, fmt.Errorf("failed to reverse ledger entry %s: %w", entryID, err)
	}

	original.Status = domain.EntryReversed
	original.ReversedByEntryID = compensating.EntryID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = actor.UserID

	logger.Info("Ledger entry reversed", slog.String("entry_id", entryID), slog.String("compensating_entry_id", compensating.EntryID))
	return original, &compensating, nil
}

// QueryBalance sums Active entries for the owner up to asOf. This is the only
// supported way to read a balance.
func (s *ledgerService) QueryBalance(ctx context.Context, params dto.BalanceQueryParams) (decimal.Decimal, error) {
	ownerLevel := domain.HierarchyLevel(params.OwnerLevel)
	if err := s.validateOwner(ctx, ownerLevel, params.OwnerEntityID); err != nil {
		return decimal.Zero, err
	}

	filter := portsrepo.LedgerFilter{
		OwnerLevel:         ownerLevel,
		OwnerEntityID:      params.OwnerEntityID,
		ContributionTypeID: params.ContributionTypeID,
		AsOf:               params.AsOf,
	}
	balance, err := s.ledgerRepo.SumEntries(ctx, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query balance: %w", err)
	}
	return balance, nil
}

// ListEntries retrieves a paginated audit listing, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	filter := portsrepo.LedgerFilter{
		OwnerLevel:         domain.HierarchyLevel(params.OwnerLevel),
		OwnerEntityID:      params.OwnerEntityID,
		ContributionTypeID: params.ContributionTypeID,
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// GetEntryByID retrieves a single ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}
