package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessGroundwaterRisk_RiskTable(t *testing.T) {
	tests := []struct {
		category string
		level    string
		score    int
	}{
		{GWCategoryOverExploit, "High", 90},
		{GWCategoryCritical, "Moderate-High", 75},
		{GWCategorySemiCritical, "Moderate", 60},
		{GWCategorySafe, "Low", 30},
		{"Something else", "Unknown", 50},
		{"", "Unknown", 50},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			risk := AssessGroundwaterRisk(GroundwaterRecord{Category: tt.category})
			assert.Equal(t, tt.level, risk.RiskLevel)
			assert.Equal(t, tt.score, risk.RiskScore)
			assert.NotEmpty(t, risk.Recommendation)
		})
	}
}

// Every category except Over-exploited is recharge-suitable.
func TestAssessGroundwaterRisk_RechargeSuitability(t *testing.T) {
	for _, category := range []string{
		GWCategorySafe, GWCategorySemiCritical, GWCategoryCritical,
		GWCategoryOverExploit, GWCategoryUnknown, "odd",
	} {
		risk := AssessGroundwaterRisk(GroundwaterRecord{Category: category})
		assert.Equal(t, category != GWCategoryOverExploit, risk.SuitableForRecharge, "category %q", category)
	}
}

func TestAssessGroundwaterRisk_Derived(t *testing.T) {
	rec := GroundwaterRecord{
		Category:        GWCategoryOverExploit,
		NetAvailability: 100,
		TotalDraft:      160,
		StagePercent:    160,
	}

	risk := AssessGroundwaterRisk(rec)

	assert.Equal(t, -60.0, risk.DeficitSurplus)
	assert.InDelta(t, 1.6, risk.UtilizationRatio, 1e-9)
	assert.Contains(t, risk.RechargeNotes, "deficit of 60.00 units")
	assert.Equal(t, "Critical - Immediate action required", risk.RechargePriority)
	assert.Len(t, risk.ActionItems, 5)
}

func TestAssessGroundwaterRisk_SafeSurplusNotes(t *testing.T) {
	risk := AssessGroundwaterRisk(GroundwaterRecord{
		Category:        GWCategorySafe,
		NetAvailability: 120,
		TotalDraft:      80,
	})
	assert.Contains(t, risk.RechargeNotes, "surplus of 40.00 units")

	risk = AssessGroundwaterRisk(GroundwaterRecord{
		Category:        GWCategorySafe,
		NetAvailability: 80,
		TotalDraft:      90,
	})
	assert.Equal(t, "Area is currently safe but monitor regularly.", risk.RechargeNotes)
}
