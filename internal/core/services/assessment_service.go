package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
)

// assessmentService derives balances from the ledger and the collaborator
// totals. It holds no state and writes nothing; every number is recomputed
// from source records on each call.
type assessmentService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	totalsRepo portsrepo.TotalsRepositoryFacade
	ctService  portssvc.ContributionTypeSvcFacade

	// lowThresholdPct classifies a fund as Low when its balance drops below
	// this percentage of period contributions.
	lowThresholdPct decimal.Decimal
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	totalsRepo portsrepo.TotalsRepositoryFacade,
	ctService portssvc.ContributionTypeSvcFacade,
	lowThresholdPct decimal.Decimal,
) portssvc.AssessmentSvcFacade {
	return &assessmentService{
		ledgerRepo:      ledgerRepo,
		totalsRepo:      totalsRepo,
		ctService:       ctService,
		lowThresholdPct: lowThresholdPct,
	}
}

var _ portssvc.AssessmentSvcFacade = (*assessmentService)(nil)

// sumSource sums Active ledger entries of one source type for the owner.
// typeScoped controls whether the sum is filtered to the contribution type;
// transfer and remittance entries carry no contribution type.
func (s *assessmentService) sumSource(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, source domain.SourceType, asOf *time.Time, typeScoped bool) (decimal.Decimal, error) {
	filter := portsrepo.LedgerFilter{
		OwnerLevel:    ownerLevel,
		OwnerEntityID: ownerEntityID,
		SourceTypes:   []domain.SourceType{source},
		AsOf:          asOf,
	}
	if typeScoped {
		filter.ContributionTypeID = &contributionTypeID
	}
	sum, err := s.ledgerRepo.SumEntries(ctx, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s entries: %w", source, err)
	}
	return sum, nil
}

// BalanceFor computes the component breakdown for one entity and contribution
// type. Outflow entries are stored signed in the ledger; the report carries
// each component as a positive magnitude and lets ComputeBalance apply signs.
func (s *assessmentService) BalanceFor(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (*domain.FundAssessment, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	cutoff := &asOf

	assessment := &domain.FundAssessment{
		OwnerLevel:         ownerLevel,
		OwnerEntityID:      ownerEntityID,
		ContributionTypeID: contributionTypeID,
	}

	opening, err := s.sumSource(ctx, ownerLevel, ownerEntityID, contributionTypeID, domain.SourceOpeningBalance, cutoff, true)
	if err != nil {
		return nil, err
	}
	assessment.OpeningBalance = opening

	contributions, err := s.totalsRepo.SumVerifiedContributions(ctx, ownerLevel, ownerEntityID, contributionTypeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum verified contributions: %w", err)
	}
	assessment.Contributions = contributions

	expenditures, err := s.totalsRepo.SumApprovedExpenditures(ctx, ownerLevel, ownerEntityID, contributionTypeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved expenditures: %w", err)
	}
	assessment.Expenditures = expenditures

	transfersIn, err := s.sumSource(ctx, ownerLevel, ownerEntityID, contributionTypeID, domain.SourceTransferIn, cutoff, false)
	if err != nil {
		return nil, err
	}
	assessment.TransfersIn = transfersIn

	transfersOut, err := s.sumSource(ctx, ownerLevel, ownerEntityID, contributionTypeID, domain.SourceTransferOut, cutoff, false)
	if err != nil {
		return nil, err
	}
	assessment.TransfersOut = transfersOut.Neg()

	remittancesSent, err := s.sumSource(ctx, ownerLevel, ownerEntityID, contributionTypeID, domain.SourceRemittanceSent, cutoff, false)
	if err != nil {
		return nil, err
	}
	assessment.RemittancesSent = remittancesSent.Neg()

	remittancesReceived, err := s.sumSource(ctx, ownerLevel, ownerEntityID, contributionTypeID, domain.SourceRemittanceReceived, cutoff, false)
	if err != nil {
		return nil, err
	}
	assessment.RemittancesReceived = remittancesReceived

	assessment.ComputeBalance()
	assessment.ClassifyHealth(s.lowThresholdPct)
	return assessment, nil
}

// ReportFor runs BalanceFor over every contribution type visible to the scope.
func (s *assessmentService) ReportFor(ctx context.Context, scope domain.EntityScope, asOf time.Time) ([]domain.FundAssessment, error) {
	types, err := s.ctService.ResolveVisible(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible contribution types: %w", err)
	}

	ownerLevel := scope.Level
	ownerEntityID := scope.OwnEntityID()

	assessments := make([]domain.FundAssessment, 0, len(types))
	for _, ct := range types {
		assessment, err := s.BalanceFor(ctx, ownerLevel, ownerEntityID, ct.ContributionTypeID, asOf)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *assessment)
	}
	return assessments, nil
}
