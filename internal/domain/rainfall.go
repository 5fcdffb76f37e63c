package domain

import "time"

// DailyPrecipitation is one day of the upstream precipitation series.
type DailyPrecipitation struct {
	Date time.Time
	Sum  float64 // mm
}

// RainfallSummary aggregates a multi-year daily precipitation series.
type RainfallSummary struct {
	TotalRainfallMM         float64            `json:"total_rainfall_mm"`
	AverageAnnualRainfallMM float64            `json:"average_annual_rainfall_mm"`
	YearsAnalyzed           int                `json:"years_analyzed"`
	DataPoints              int                `json:"data_points"`
	MonthlyRainfallMM       map[string]float64 `json:"monthly_rainfall_mm,omitempty"`
	PeakRainfall            *PeakRainfall      `json:"peak_rainfall,omitempty"`
	MeanMonthlyMM           float64            `json:"mean_monthly_mm"`
	MaxMonthlyMM            float64            `json:"max_monthly_mm"`
	MinMonthlyMM            float64            `json:"min_monthly_mm"`
	Category                string             `json:"rainfall_category"`
}

// PeakRainfall identifies the wettest single day in the series.
type PeakRainfall struct {
	Date       string  `json:"date"`
	RainfallMM float64 `json:"rainfall_mm"`
}

// SummarizeRainfall computes totals, the annual average over the analyzed
// window, per-month sums keyed "YYYY-MM", and the peak day.
func SummarizeRainfall(series []DailyPrecipitation, years int) RainfallSummary {
	s := RainfallSummary{
		YearsAnalyzed:     years,
		DataPoints:        len(series),
		MonthlyRainfallMM: make(map[string]float64, years*12),
	}

	var peak *PeakRainfall
	for _, day := range series {
		s.TotalRainfallMM += day.Sum
		month := day.Date.UTC().Format("2006-01")
		s.MonthlyRainfallMM[month] += day.Sum
		if peak == nil || day.Sum > peak.RainfallMM {
			peak = &PeakRainfall{Date: day.Date.UTC().Format("2006-01-02"), RainfallMM: day.Sum}
		}
	}

	if years > 0 {
		s.AverageAnnualRainfallMM = roundTo(s.TotalRainfallMM/float64(years), 2)
	}
	s.TotalRainfallMM = roundTo(s.TotalRainfallMM, 2)
	if peak != nil {
		peak.RainfallMM = roundTo(peak.RainfallMM, 2)
		s.PeakRainfall = peak
	}

	if len(s.MonthlyRainfallMM) > 0 {
		first := true
		var sum float64
		for m, v := range s.MonthlyRainfallMM {
			v = roundTo(v, 2)
			s.MonthlyRainfallMM[m] = v
			sum += v
			if first || v > s.MaxMonthlyMM {
				s.MaxMonthlyMM = v
			}
			if first || v < s.MinMonthlyMM {
				s.MinMonthlyMM = v
			}
			first = false
		}
		s.MeanMonthlyMM = roundTo(sum/float64(len(s.MonthlyRainfallMM)), 2)
	}

	s.Category = CategorizeRainfall(s.AverageAnnualRainfallMM)
	return s
}

// CategorizeRainfall buckets an annual rainfall amount. Boundaries use `<`:
// exactly 250 mm/year is Semi-Arid, not Arid.
func CategorizeRainfall(annualMM float64) string {
	switch {
	case annualMM < 250:
		return "Arid (Very Low Rainfall)"
	case annualMM < 500:
		return "Semi-Arid (Low Rainfall)"
	case annualMM < 1000:
		return "Sub-Humid (Moderate Rainfall)"
	case annualMM < 2000:
		return "Humid (High Rainfall)"
	default:
		return "Very Humid (Very High Rainfall)"
	}
}
