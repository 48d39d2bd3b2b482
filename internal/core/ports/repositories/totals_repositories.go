package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContributionTotalsReader sums the external contribution ledger. Only
// Verified contributions count; the collaborator owns their validation.
type ContributionTotalsReader interface {
	// SumVerifiedContributions sums verified contribution amounts for the
	// owner and contribution type up to asOf (inclusive).
	SumVerifiedContributions(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error)
}

// ExpenditureTotalsReader sums the external expenditure ledger. Only Approved
// expenditures count.
type ExpenditureTotalsReader interface {
	// SumApprovedExpenditures sums approved expenditure amounts for the owner
	// and contribution type up to asOf (inclusive).
	SumApprovedExpenditures(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (decimal.Decimal, error)
}

// TotalsRepositoryFacade combines the external collaborator total readers.
type TotalsRepositoryFacade interface {
	ContributionTotalsReader
	ExpenditureTotalsReader
}
