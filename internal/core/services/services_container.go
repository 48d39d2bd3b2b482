package services

import (
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
	"github.com/SscSPs/mission_finance_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotificationDispatcher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Contribution types first; visibility resolution feeds the assessment
	// service.
	container.ContributionType = NewContributionTypeService(
		repos.ContributionTypeRepo,
		repos.HierarchyRepo,
	)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.HierarchyRepo, repos.ContributionTypeRepo)
	container.OpeningBalance = NewOpeningBalanceService(repos.OpeningBalanceRepo, repos.ContributionTypeRepo, repos.HierarchyRepo, notifier)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.HierarchyRepo, notifier)
	container.Remittance = NewRemittanceService(repos.RemittanceRepo, repos.HierarchyRepo, notifier)
	container.Assessment = NewAssessmentService(
		repos.LedgerRepo,
		repos.TotalsRepo,
		container.ContributionType,
		cfg.ReportLowThresholdPct,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ContributionTypeSvcFacade = (*contributionTypeService)(nil)
	_ portssvc.LedgerSvcFacade           = (*ledgerService)(nil)
	_ portssvc.OpeningBalanceSvcFacade   = (*openingBalanceService)(nil)
	_ portssvc.TransferSvcFacade         = (*transferService)(nil)
	_ portssvc.RemittanceSvcFacade       = (*remittanceService)(nil)
	_ portssvc.AssessmentSvcFacade       = (*assessmentService)(nil)
)
