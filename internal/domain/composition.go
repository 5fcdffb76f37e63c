package domain

// Default raw values applied per-field when SoilGrids omits or nulls a
// property. On the raw scale: 400→40% sand, 350→35% silt, 250→25% clay,
// ocd 15→0.015 OC after conversion.
const (
	DefaultRawSand = 400
	DefaultRawSilt = 350
	DefaultRawClay = 250
	DefaultRawOCD  = 15
)

// RawSoilProperties holds upstream SoilGrids values on their native scales:
// sand/silt/clay on a 0–1000 integer scale, ocd as organic-carbon density.
// A nil field means the provider failed or returned null for that property.
type RawSoilProperties struct {
	Sand *float64
	Silt *float64
	Clay *float64
	OCD  *float64
}

// Degraded reports whether any field is missing and will fall back to its
// default. Surfaced to callers only as a degraded-confidence note.
func (r RawSoilProperties) Degraded() bool {
	return r.Sand == nil || r.Silt == nil || r.Clay == nil || r.OCD == nil
}

// SoilComposition is the normalized per-request soil description: three
// percentages that should sum to roughly 100 (drift tolerated) and a
// non-negative organic-carbon measure.
type SoilComposition struct {
	SandPct       float64 `json:"sand"`
	SiltPct       float64 `json:"silt"`
	ClayPct       float64 `json:"clay"`
	OrganicCarbon float64 `json:"organicCarbon"`
}

// FeatureNames lists the model features in their contractual order.
// Reordering silently invalidates predictions from models trained on it.
var FeatureNames = []string{"Clay", "Silt", "Sand", "Texture Encoded", "OC"}

// NormalizeSoilProperties converts raw upstream values into a SoilComposition:
// 0–1000 fractions divide by 10 to percent, ocd scales by 0.001. Fallback is
// per-field, never all-or-nothing.
func NormalizeSoilProperties(raw RawSoilProperties) SoilComposition {
	return SoilComposition{
		SandPct:       rawOrDefault(raw.Sand, DefaultRawSand) / 10.0,
		SiltPct:       rawOrDefault(raw.Silt, DefaultRawSilt) / 10.0,
		ClayPct:       rawOrDefault(raw.Clay, DefaultRawClay) / 10.0,
		OrganicCarbon: rawOrDefault(raw.OCD, DefaultRawOCD) * 0.001,
	}
}

func rawOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Texture classifies the composition through the shared cascade.
func (c SoilComposition) Texture() (TextureClass, int) {
	return ClassifyTexture(c.SandPct, c.SiltPct, c.ClayPct)
}

// FeatureVector produces the ordered (Clay, Silt, Sand, TextureEncoded, OC)
// tuple fed to the regressor.
func (c SoilComposition) FeatureVector() []float64 {
	_, encoded := c.Texture()
	return []float64{c.ClayPct, c.SiltPct, c.SandPct, float64(encoded), c.OrganicCarbon}
}
