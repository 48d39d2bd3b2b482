package domain

import "github.com/shopspring/decimal"

// FundHealth classifies the state of a fund for reporting.
type FundHealth string

const (
	HealthOverspent FundHealth = "OVERSPENT"
	HealthLow       FundHealth = "LOW"
	HealthHealthy   FundHealth = "HEALTHY"
)

// FundAssessment is the audit-friendly balance breakdown for one entity and
// one contribution type. Each component is reported separately so an
// administrator can trace the final number.
type FundAssessment struct {
	OwnerLevel          HierarchyLevel  `json:"ownerLevel"`
	OwnerEntityID       string          `json:"ownerEntityID,omitempty"`
	ContributionTypeID  string          `json:"contributionTypeID"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	Contributions       decimal.Decimal `json:"contributions"` // Verified only
	Expenditures        decimal.Decimal `json:"expenditures"`  // Approved only
	TransfersIn         decimal.Decimal `json:"transfersIn"`
	TransfersOut        decimal.Decimal `json:"transfersOut"`
	RemittancesSent     decimal.Decimal `json:"remittancesSent"`     // Not type-scoped
	RemittancesReceived decimal.Decimal `json:"remittancesReceived"` // Not type-scoped
	Balance             decimal.Decimal `json:"balance"`
	Health              FundHealth      `json:"health"`
}

// ComputeBalance derives the final balance from the broken-out components.
func (a *FundAssessment) ComputeBalance() {
	a.Balance = a.OpeningBalance.
		Add(a.Contributions).
		Sub(a.Expenditures).
		Add(a.TransfersIn).
		Sub(a.TransfersOut).
		Sub(a.RemittancesSent).
		Add(a.RemittancesReceived)
}

// ClassifyHealth labels the assessment: overspent when negative, low when
// below lowPct percent of period contributions, healthy otherwise. lowPct is
// configuration, not a constant.
func (a *FundAssessment) ClassifyHealth(lowPct decimal.Decimal) {
	switch {
	case a.Balance.IsNegative():
		a.Health = HealthOverspent
	case a.Contributions.IsPositive() &&
		a.Balance.LessThan(a.Contributions.Mul(lowPct).Div(hundred)):
		a.Health = HealthLow
	default:
		a.Health = HealthHealthy
	}
}
