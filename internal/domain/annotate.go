package domain

import "math"

// SoilAnalysis holds the qualitative annotations derived from a Ksat value
// and its texture class.
type SoilAnalysis struct {
	PrimarySoilType      string       `json:"primarySoilType"`
	InfiltrationCategory string       `json:"infiltrationCategory"`
	Suitability          string       `json:"suitability"`
	Recommendation       string       `json:"recommendation"`
	SuitabilityScore     float64      `json:"suitabilityScore"`
	TextureClass         TextureClass `json:"textureClass"`
	KsatCategory         string       `json:"ksatCategory"`
}

// AnnotateSoil maps a Ksat value and texture class onto the fixed threshold
// ladders. Infiltration tiers and the finer Ksat category ladder are
// independent; both are monotonic in ksat.
func AnnotateSoil(ksat float64, comp SoilComposition, texture TextureClass) SoilAnalysis {
	var category, suitability, recommendation string
	switch {
	case ksat > 100:
		category = "High"
		suitability = "Excellent for rainwater infiltration"
		recommendation = "Ideal for recharge pits and infiltration basins"
	case ksat > 50:
		category = "Moderate"
		suitability = "Good for rainwater infiltration"
		recommendation = "Suitable for most infiltration structures"
	case ksat > 20:
		category = "Low"
		suitability = "Fair for rainwater infiltration"
		recommendation = "May require enhanced infiltration methods"
	default:
		category = "Very Low"
		suitability = "Poor for rainwater infiltration"
		recommendation = "Consider alternative drainage solutions"
	}

	return SoilAnalysis{
		PrimarySoilType:      primarySoilType(comp),
		InfiltrationCategory: category,
		Suitability:          suitability,
		Recommendation:       recommendation,
		SuitabilityScore:     roundTo(clamp(ksat/150*100, 0, 100), 1),
		TextureClass:         texture,
		KsatCategory:         KsatCategory(ksat),
	}
}

// KsatCategory buckets a Ksat value into the conventional conductivity
// classes. Boundaries use `<`: exactly 5 mm/hr is "Slow".
func KsatCategory(ksat float64) string {
	switch {
	case ksat < 5:
		return "Very Slow"
	case ksat < 20:
		return "Slow"
	case ksat < 60:
		return "Moderate"
	case ksat < 150:
		return "Fast"
	default:
		return "Very Fast"
	}
}

// ConfidenceScore produces the crude confidence heuristic for a prediction:
// a base score nudged by whether the Ksat value sits in its typical range and
// whether the composition percentages are internally consistent, clamped to
// [0.5, 0.95].
func ConfidenceScore(ksat float64, comp SoilComposition) float64 {
	confidence := 0.8

	switch {
	case ksat >= 10 && ksat <= 150:
		confidence += 0.1
	case ksat >= 5 && ksat <= 200:
		confidence += 0.05
	default:
		confidence -= 0.1
	}

	total := comp.SandPct + comp.SiltPct + comp.ClayPct
	if total >= 95 && total <= 105 {
		confidence += 0.05
	} else {
		confidence -= 0.05
	}

	return clamp(confidence, 0.5, 0.95)
}

// primarySoilType names the dominant component of the composition.
func primarySoilType(comp SoilComposition) string {
	name, max := "Clay", comp.ClayPct
	if comp.SiltPct > max {
		name, max = "Silt", comp.SiltPct
	}
	if comp.SandPct > max {
		name = "Sand"
	}
	return name
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
