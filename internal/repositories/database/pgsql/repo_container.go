package pgsql

import (
	portsrepo "github.com/SscSPs/mission_finance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	hierarchyRepo := newPgxHierarchyRepository(dbPool)
	contributionTypeRepo := newPgxContributionTypeRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	openingBalanceRepo := newPgxOpeningBalanceRepository(dbPool, ledgerRepo)
	transferRepo := newPgxTransferRepository(dbPool, ledgerRepo)
	remittanceRepo := newPgxRemittanceRepository(dbPool, ledgerRepo)
	totalsRepo := newPgxTotalsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		HierarchyRepo:        hierarchyRepo,
		ContributionTypeRepo: contributionTypeRepo,
		LedgerRepo:           ledgerRepo,
		OpeningBalanceRepo:   openingBalanceRepo,
		TransferRepo:         transferRepo,
		RemittanceRepo:       remittanceRepo,
		TotalsRepo:           totalsRepo,
	}
}
