package domain

import "fmt"

// Groundwater categories from the central assessment data.
const (
	GWCategorySafe         = "Safe"
	GWCategorySemiCritical = "Semi-critical"
	GWCategoryCritical     = "Critical"
	GWCategoryOverExploit  = "Over-exploited"
	GWCategoryUnknown      = "Unknown"
)

// GroundwaterRecord holds the assessment figures for one location.
// Volumes share whatever unit the source table uses; StagePercent is the
// ratio of extraction to recharge.
type GroundwaterRecord struct {
	AnnualReplenishableGW float64 `json:"annual_replenishable"`
	NetAvailability       float64 `json:"net_availability"`
	TotalDraft            float64 `json:"total_draft"`
	StagePercent          float64 `json:"stage_percent"`
	Category              string  `json:"category"`
	Location              string  `json:"location"`
	District              string  `json:"district"`
	State                 string  `json:"state"`
}

// GroundwaterRisk is the derived risk assessment for a location.
type GroundwaterRisk struct {
	RiskLevel        string  `json:"risk_level"`
	RiskScore        int     `json:"risk_score"`
	UtilizationRatio float64 `json:"utilization_ratio"`
	Recommendation   string  `json:"recommendation"`

	DeficitSurplus      float64  `json:"deficit_surplus"`
	SuitableForRecharge bool     `json:"suitable_for_recharge"`
	RechargePriority    string   `json:"recharge_priority"`
	RechargeNotes       string   `json:"recharge_notes"`
	ActionItems         []string `json:"action_items"`
}

// AssessGroundwaterRisk maps a record's category onto the fixed risk table
// and derives recharge suitability. Every category except Over-exploited is
// considered suitable for recharge structures.
func AssessGroundwaterRisk(rec GroundwaterRecord) GroundwaterRisk {
	var level, recommendation string
	var score int
	switch rec.Category {
	case GWCategoryOverExploit:
		level = "High"
		score = 90
		recommendation = "Critical: Immediate water conservation and recharge measures required"
	case GWCategoryCritical:
		level = "Moderate-High"
		score = 75
		recommendation = "Implement water conservation and explore recharge options"
	case GWCategorySemiCritical:
		level = "Moderate"
		score = 60
		recommendation = "Monitor usage and consider preventive recharge measures"
	case GWCategorySafe:
		level = "Low"
		score = 30
		recommendation = "Continue monitoring and maintain sustainable practices"
	default:
		level = "Unknown"
		score = 50
		recommendation = "Data unavailable or incomplete"
	}

	deficitSurplus := rec.NetAvailability - rec.TotalDraft

	return GroundwaterRisk{
		RiskLevel:           level,
		RiskScore:           score,
		UtilizationRatio:    rec.StagePercent / 100,
		Recommendation:      recommendation,
		DeficitSurplus:      deficitSurplus,
		SuitableForRecharge: rec.Category != GWCategoryOverExploit,
		RechargePriority:    rechargePriority(rec.Category),
		RechargeNotes:       rechargeNotes(rec.Category, deficitSurplus),
		ActionItems:         gwRecommendations(rec.Category),
	}
}

func rechargePriority(category string) string {
	switch category {
	case GWCategoryOverExploit:
		return "Critical - Immediate action required"
	case GWCategoryCritical:
		return "High - Action recommended"
	case GWCategorySemiCritical:
		return "Medium - Preventive measures"
	case GWCategorySafe:
		return "Low - Maintenance and monitoring"
	default:
		return "Unknown"
	}
}

func rechargeNotes(category string, deficitSurplus float64) string {
	switch category {
	case GWCategoryOverExploit:
		return fmt.Sprintf("Area is over-exploited with a deficit of %.2f units. "+
			"Rainwater harvesting and artificial recharge are essential.", -deficitSurplus)
	case GWCategoryCritical:
		return "Area is approaching critical stage. Implement recharge structures " +
			"to prevent further depletion."
	case GWCategorySemiCritical:
		return "Area shows signs of stress. Consider implementing recharge measures " +
			"as a preventive strategy."
	case GWCategorySafe:
		if deficitSurplus > 0 {
			return fmt.Sprintf("Area has surplus of %.2f units. "+
				"Maintain current practices and consider minor recharge enhancements.", deficitSurplus)
		}
		return "Area is currently safe but monitor regularly."
	}
	return "Assessment data incomplete."
}

func gwRecommendations(category string) []string {
	switch category {
	case GWCategoryOverExploit:
		return []string{
			"Install rainwater harvesting systems immediately",
			"Implement artificial recharge structures (percolation pits, recharge wells)",
			"Reduce groundwater extraction by 30-40%",
			"Consider alternative water sources",
			"Monitor groundwater levels monthly",
		}
	case GWCategoryCritical:
		return []string{
			"Install rainwater harvesting systems",
			"Build percolation pits and recharge trenches",
			"Reduce groundwater extraction by 20-30%",
			"Conduct regular water audits",
			"Monitor groundwater levels quarterly",
		}
	case GWCategorySemiCritical:
		return []string{
			"Install rainwater harvesting as preventive measure",
			"Consider recharge pits in areas with good infiltration",
			"Optimize water usage efficiency",
			"Monitor groundwater levels bi-annually",
		}
	default:
		return []string{
			"Maintain current sustainable practices",
			"Consider rainwater harvesting for additional benefits",
			"Monitor groundwater levels annually",
			"Share best practices with neighboring areas",
		}
	}
}
