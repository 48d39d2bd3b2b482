package services

import (
	"context"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
)

// AssessmentSvcFacade derives audit-safe balances from the ledger plus the
// external contribution and expenditure totals. Read-only.
type AssessmentSvcFacade interface {
	// BalanceFor computes the component breakdown and final balance for one
	// entity and contribution type as of the given time (zero time means now).
	BalanceFor(ctx context.Context, ownerLevel domain.HierarchyLevel, ownerEntityID string, contributionTypeID string, asOf time.Time) (*domain.FundAssessment, error)

	// ReportFor computes BalanceFor over every contribution type visible to
	// the scope, classified by fund health. The owner is the scope's own
	// entity (empty for Mission).
	ReportFor(ctx context.Context, scope domain.EntityScope, asOf time.Time) ([]domain.FundAssessment, error)
}
