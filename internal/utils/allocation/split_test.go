package allocation

import (
	"testing"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titheType() domain.ContributionType {
	return domain.ContributionType{
		Code:        "TITHE",
		MissionPct:  decimal.NewFromInt(40),
		AreaPct:     decimal.Zero,
		DistrictPct: decimal.Zero,
		BranchPct:   decimal.NewFromInt(60),
	}
}

func TestSplitAmount(t *testing.T) {
	amount := decimal.RequireFromString("5000.00")
	split, err := SplitAmount(amount, titheType())
	require.NoError(t, err)

	assert.True(t, split.Mission.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, split.Branch.Equal(decimal.RequireFromString("3000.00")))
	assert.True(t, split.Area.IsZero())
	assert.True(t, split.District.IsZero())
	assert.True(t, split.Total().Equal(amount))
}

func TestSplitAmount_RoundingRemainderGoesToBranch(t *testing.T) {
	ct := domain.ContributionType{
		Code:        "THIRDS",
		MissionPct:  decimal.RequireFromString("33.33"),
		AreaPct:     decimal.RequireFromString("33.33"),
		DistrictPct: decimal.RequireFromString("33.34"),
		BranchPct:   decimal.Zero,
	}
	amount := decimal.RequireFromString("100.01")
	split, err := SplitAmount(amount, ct)
	require.NoError(t, err)

	// Whatever the per-level rounding did, the parts must re-sum exactly.
	assert.True(t, split.Total().Equal(amount), "parts sum to %s, want %s", split.Total(), amount)
}

func TestSplitAmount_InvalidPercentages(t *testing.T) {
	ct := titheType()
	ct.BranchPct = decimal.NewFromInt(50) // sums to 90
	_, err := SplitAmount(decimal.NewFromInt(100), ct)
	assert.Error(t, err)
}

func TestShareFor(t *testing.T) {
	split, err := SplitAmount(decimal.RequireFromString("1000.00"), titheType())
	require.NoError(t, err)

	assert.True(t, split.ShareFor(domain.LevelMission).Equal(decimal.RequireFromString("400.00")))
	assert.True(t, split.ShareFor(domain.LevelBranch).Equal(decimal.RequireFromString("600.00")))
	assert.True(t, split.ShareFor(domain.HierarchyLevel("BOGUS")).IsZero())
}
