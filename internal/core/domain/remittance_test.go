package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHierarchyRemittance_Outstanding(t *testing.T) {
	r := domain.HierarchyRemittance{
		AmountDue:  decimal.RequireFromString("1000.00"),
		AmountSent: decimal.RequireFromString("600.00"),
	}
	assert.True(t, r.Outstanding().Equal(decimal.RequireFromString("400.00")))

	// Overpayment clamps to zero rather than going negative.
	r.AmountSent = decimal.RequireFromString("1200.00")
	assert.True(t, r.Outstanding().IsZero())
}

func TestHierarchyRemittance_DueDate(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		want  time.Time
	}{
		{"march period due april 10th", 3, 2024, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		{"december rolls into january", 12, 2024, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.HierarchyRemittance{Month: tt.month, Year: tt.year}
			assert.Equal(t, tt.want, r.DueDate())
		})
	}
}

func TestHierarchyRemittance_AcceptsPayment(t *testing.T) {
	assert.True(t, domain.HierarchyRemittance{Status: domain.RemittancePending}.AcceptsPayment())
	assert.True(t, domain.HierarchyRemittance{Status: domain.RemittanceOverdue}.AcceptsPayment())
	assert.False(t, domain.HierarchyRemittance{Status: domain.RemittanceSent}.AcceptsPayment())
	assert.False(t, domain.HierarchyRemittance{Status: domain.RemittanceVerified}.AcceptsPayment())
}

func TestLevelsAdjacent(t *testing.T) {
	assert.True(t, domain.LevelsAdjacent(domain.LevelMission, domain.LevelArea))
	assert.True(t, domain.LevelsAdjacent(domain.LevelArea, domain.LevelMission))
	assert.True(t, domain.LevelsAdjacent(domain.LevelDistrict, domain.LevelBranch))
	assert.False(t, domain.LevelsAdjacent(domain.LevelMission, domain.LevelDistrict))
	assert.False(t, domain.LevelsAdjacent(domain.LevelMission, domain.LevelMission))
	assert.False(t, domain.LevelsAdjacent(domain.HierarchyLevel("BOGUS"), domain.LevelArea))
}
