package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	HierarchyRepo        HierarchyRepositoryFacade
	ContributionTypeRepo ContributionTypeRepositoryFacade
	LedgerRepo           LedgerRepositoryFacade
	OpeningBalanceRepo   OpeningBalanceRepositoryFacade
	TransferRepo         TransferRepositoryFacade
	RemittanceRepo       RemittanceRepositoryFacade
	TotalsRepo           TotalsRepositoryFacade
}
