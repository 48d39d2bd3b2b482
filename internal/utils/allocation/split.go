package allocation

import (
	"fmt"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Split holds the share of an amount assigned to each hierarchy level.
// The four shares always re-sum to the original amount exactly.
type Split struct {
	Mission  decimal.Decimal
	Area     decimal.Decimal
	District decimal.Decimal
	Branch   decimal.Decimal
}

// Total returns the sum of the four shares.
func (s Split) Total() decimal.Decimal {
	return s.Mission.Add(s.Area).Add(s.District).Add(s.Branch)
}

// SplitAmount divides an amount across the four levels per the contribution
// type's percentages, rounding each share to 2 decimal places. Any rounding
// remainder lands on the branch share so the parts re-sum exactly; the branch
// is where the money physically arrives, so it absorbs the cents.
func SplitAmount(amount decimal.Decimal, ct domain.ContributionType) (Split, error) {
	if !ct.SplitIsValid() {
		return Split{}, fmt.Errorf("contribution type %s percentages do not sum to 100", ct.Code)
	}

	mission := amount.Mul(ct.MissionPct).Div(hundred).Round(2)
	area := amount.Mul(ct.AreaPct).Div(hundred).Round(2)
	district := amount.Mul(ct.DistrictPct).Div(hundred).Round(2)
	branch := amount.Sub(mission).Sub(area).Sub(district)

	return Split{
		Mission:  mission,
		Area:     area,
		District: district,
		Branch:   branch,
	}, nil
}

// ShareFor returns the split share owned by the given level.
func (s Split) ShareFor(level domain.HierarchyLevel) decimal.Decimal {
	switch level {
	case domain.LevelMission:
		return s.Mission
	case domain.LevelArea:
		return s.Area
	case domain.LevelDistrict:
		return s.District
	case domain.LevelBranch:
		return s.Branch
	default:
		return decimal.Zero
	}
}
