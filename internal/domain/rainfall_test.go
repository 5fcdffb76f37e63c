package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int, mm float64) DailyPrecipitation {
	return DailyPrecipitation{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Sum: mm}
}

func TestSummarizeRainfall(t *testing.T) {
	series := []DailyPrecipitation{
		day(2023, time.June, 1, 10),
		day(2023, time.June, 2, 30),
		day(2023, time.July, 1, 5),
		day(2024, time.June, 1, 15),
	}

	s := SummarizeRainfall(series, 2)

	assert.Equal(t, 60.0, s.TotalRainfallMM)
	assert.Equal(t, 30.0, s.AverageAnnualRainfallMM)
	assert.Equal(t, 2, s.YearsAnalyzed)
	assert.Equal(t, 4, s.DataPoints)

	require.NotNil(t, s.PeakRainfall)
	assert.Equal(t, "2023-06-02", s.PeakRainfall.Date)
	assert.Equal(t, 30.0, s.PeakRainfall.RainfallMM)

	assert.Equal(t, map[string]float64{
		"2023-06": 40,
		"2023-07": 5,
		"2024-06": 15,
	}, s.MonthlyRainfallMM)
	assert.Equal(t, 40.0, s.MaxMonthlyMM)
	assert.Equal(t, 5.0, s.MinMonthlyMM)
	assert.Equal(t, 20.0, s.MeanMonthlyMM)

	assert.Equal(t, "Arid (Very Low Rainfall)", s.Category)
}

func TestSummarizeRainfall_Empty(t *testing.T) {
	s := SummarizeRainfall(nil, 30)

	assert.Zero(t, s.TotalRainfallMM)
	assert.Zero(t, s.AverageAnnualRainfallMM)
	assert.Nil(t, s.PeakRainfall)
	assert.Empty(t, s.MonthlyRainfallMM)
	assert.Equal(t, "Arid (Very Low Rainfall)", s.Category)
}

func TestCategorizeRainfall(t *testing.T) {
	tests := []struct {
		annual float64
		want   string
	}{
		{0, "Arid (Very Low Rainfall)"},
		{249.9, "Arid (Very Low Rainfall)"},
		{250, "Semi-Arid (Low Rainfall)"}, // boundary uses <, not <=
		{499, "Semi-Arid (Low Rainfall)"},
		{500, "Sub-Humid (Moderate Rainfall)"},
		{999, "Sub-Humid (Moderate Rainfall)"},
		{1000, "Humid (High Rainfall)"},
		{1200, "Humid (High Rainfall)"},
		{1999, "Humid (High Rainfall)"},
		{2000, "Very Humid (Very High Rainfall)"},
		{4000, "Very Humid (Very High Rainfall)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeRainfall(tt.annual), "annual=%v", tt.annual)
	}
}
