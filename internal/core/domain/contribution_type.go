package domain

import "github.com/shopspring/decimal"

// ContributionType defines how one class of incoming money is split across
// the four hierarchy levels and which entities may see it.
type ContributionType struct {
	ContributionTypeID string         `json:"contributionTypeID"` // Primary Key (UUID)
	Name               string         `json:"name"`
	Code               string         `json:"code"`  // Unique short code
	Scope              HierarchyLevel `json:"scope"` // Level that owns the type
	OwnerEntityID      string         `json:"ownerEntityID"` // Required iff Scope != Mission
	MissionPct         decimal.Decimal `json:"missionPct"`
	AreaPct            decimal.Decimal `json:"areaPct"`
	DistrictPct        decimal.Decimal `json:"districtPct"`
	BranchPct          decimal.Decimal `json:"branchPct"`
	IsActive           bool            `json:"isActive"`
	AuditFields
}

var hundred = decimal.NewFromInt(100)

// SplitSum returns the sum of the four allocation percentages.
func (ct ContributionType) SplitSum() decimal.Decimal {
	return ct.MissionPct.Add(ct.AreaPct).Add(ct.DistrictPct).Add(ct.BranchPct)
}

// SplitIsValid reports whether the four percentages each lie in [0,100] and
// sum to exactly 100. Exact decimal comparison, no float tolerance.
func (ct ContributionType) SplitIsValid() bool {
	for _, pct := range []decimal.Decimal{ct.MissionPct, ct.AreaPct, ct.DistrictPct, ct.BranchPct} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return false
		}
	}
	return ct.SplitSum().Equal(hundred)
}

// VisibleTo implements scope-based visibility: Mission types are visible to
// everyone; Area/District types to themselves and their descendants; Branch
// types only to that branch. This is the single place visibility is decided.
func (ct ContributionType) VisibleTo(scope EntityScope) bool {
	switch ct.Scope {
	case LevelMission:
		return true
	case LevelArea:
		return ct.OwnerEntityID == scope.AreaID
	case LevelDistrict:
		return ct.OwnerEntityID == scope.DistrictID
	case LevelBranch:
		return ct.OwnerEntityID == scope.BranchID
	default:
		return false
	}
}
