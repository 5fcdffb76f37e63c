package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotateSoil_InfiltrationLadder(t *testing.T) {
	comp := SoilComposition{SandPct: 40, SiltPct: 35, ClayPct: 25}

	tests := []struct {
		name           string
		ksat           float64
		category       string
		recommendation string
	}{
		{"high", 150, "High", "Ideal for recharge pits and infiltration basins"},
		{"just above high boundary", 100.1, "High", "Ideal for recharge pits and infiltration basins"},
		{"exactly 100 is moderate", 100, "Moderate", "Suitable for most infiltration structures"},
		{"moderate", 75, "Moderate", "Suitable for most infiltration structures"},
		{"low", 30, "Low", "May require enhanced infiltration methods"},
		{"exactly 20 is very low", 20, "Very Low", "Consider alternative drainage solutions"},
		{"very low", 3, "Very Low", "Consider alternative drainage solutions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnnotateSoil(tt.ksat, comp, TextureLoam)
			assert.Equal(t, tt.category, analysis.InfiltrationCategory)
			assert.Equal(t, tt.recommendation, analysis.Recommendation)
		})
	}
}

// Increasing ksat never demotes the infiltration tier.
func TestAnnotateSoil_MonotonicTiers(t *testing.T) {
	rank := map[string]int{"Very Low": 0, "Low": 1, "Moderate": 2, "High": 3}
	comp := SoilComposition{SandPct: 40, SiltPct: 35, ClayPct: 25}

	prev := -1
	for ksat := 0.0; ksat <= 300; ksat += 0.5 {
		analysis := AnnotateSoil(ksat, comp, TextureLoam)
		cur := rank[analysis.InfiltrationCategory]
		assert.GreaterOrEqual(t, cur, prev, "ksat=%v", ksat)
		prev = cur
	}
}

func TestKsatCategory(t *testing.T) {
	tests := []struct {
		ksat float64
		want string
	}{
		{1, "Very Slow"},
		{4.99, "Very Slow"},
		{5, "Slow"},
		{19.9, "Slow"},
		{20, "Moderate"},
		{59.9, "Moderate"},
		{60, "Fast"},
		{149.9, "Fast"},
		{150, "Very Fast"},
		{300, "Very Fast"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KsatCategory(tt.ksat), "ksat=%v", tt.ksat)
	}
}

func TestConfidenceScore(t *testing.T) {
	balanced := SoilComposition{SandPct: 40, SiltPct: 35, ClayPct: 25}
	drifted := SoilComposition{SandPct: 50, SiltPct: 40, ClayPct: 25} // sums to 115

	t.Run("typical range and consistent composition", func(t *testing.T) {
		assert.InDelta(t, 0.95, ConfidenceScore(80, balanced), 1e-9)
	})

	t.Run("wider range", func(t *testing.T) {
		assert.InDelta(t, 0.90, ConfidenceScore(180, balanced), 1e-9)
	})

	t.Run("out of range and drifted composition", func(t *testing.T) {
		assert.InDelta(t, 0.65, ConfidenceScore(280, drifted), 1e-9)
	})

	t.Run("clamped to band", func(t *testing.T) {
		for ksat := 0.0; ksat <= 400; ksat += 7 {
			for _, comp := range []SoilComposition{balanced, drifted, {}} {
				score := ConfidenceScore(ksat, comp)
				assert.GreaterOrEqual(t, score, 0.5)
				assert.LessOrEqual(t, score, 0.95)
			}
		}
	})
}

func TestAnnotateSoil_Fields(t *testing.T) {
	comp := SoilComposition{SandPct: 85, SiltPct: 10, ClayPct: 5, OrganicCarbon: 0.5}
	analysis := AnnotateSoil(120, comp, TextureSand)

	assert.Equal(t, "Sand", analysis.PrimarySoilType)
	assert.Equal(t, TextureSand, analysis.TextureClass)
	assert.Equal(t, "Fast", analysis.KsatCategory)
	assert.Equal(t, 80.0, analysis.SuitabilityScore)
}

func TestAnnotateSoil_SuitabilityScoreCapped(t *testing.T) {
	comp := SoilComposition{SandPct: 90, SiltPct: 5, ClayPct: 5}
	analysis := AnnotateSoil(290, comp, TextureSand)
	assert.Equal(t, 100.0, analysis.SuitabilityScore)
}
