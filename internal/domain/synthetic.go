package domain

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic Ksat bounds in mm/hr. Wider than the serving clamp: training
// targets keep the physical tails the regressor should learn.
const (
	SyntheticKsatMin = 0.5
	SyntheticKsatMax = 350
)

// GenerateSynthetic produces n physically-plausible (features, Ksat) training
// pairs for the fallback path when no real dataset is supplied. Feature rows
// follow the FeatureNames order. The same seed always yields the same
// sequences.
//
// Composition is drawn as Beta(2,5)-shaped clay scaled to 0–60% and
// Beta(2,2)-shaped sand scaled to 0–85%, with silt the 100-complement; the
// triple is renormalized to sum to exactly 100. Organic carbon is
// LogNormal(0.5, 0.8) clipped to [0.1, 15]. Ksat is a linear base
// (100 + 2.5·sand − 2·clay − 0.5·OC) scaled by a texture multiplier with
// Gaussian noise at 15% of the base.
func GenerateSynthetic(n int, seed uint64) ([][]float64, []float64) {
	src := rand.NewSource(seed)
	clayDist := distuv.Beta{Alpha: 2, Beta: 5, Src: src}
	sandDist := distuv.Beta{Alpha: 2, Beta: 2, Src: src}
	ocDist := distuv.LogNormal{Mu: 0.5, Sigma: 0.8, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	features := make([][]float64, n)
	targets := make([]float64, n)

	for i := 0; i < n; i++ {
		clay := clayDist.Rand() * 60
		sand := sandDist.Rand() * 85
		silt := 100 - clay - sand

		total := clay + sand + silt
		clay = clay / total * 100
		silt = silt / total * 100
		sand = sand / total * 100

		texture, encoded := ClassifyTexture(sand, silt, clay)

		oc := clamp(ocDist.Rand(), 0.1, 15.0)

		base := 100 + sand*2.5 - clay*2.0 - oc*0.5
		base *= textureKsatMultiplier(texture)

		ksat := base + noise.Rand()*math.Abs(base)*0.15
		if ksat < SyntheticKsatMin {
			ksat = SyntheticKsatMin
		}

		features[i] = []float64{clay, silt, sand, float64(encoded), oc}
		targets[i] = clamp(ksat, SyntheticKsatMin, SyntheticKsatMax)
	}

	return features, targets
}

// textureKsatMultiplier adjusts the linear base toward texture-typical
// permeability: coarse soils drain far faster than fine ones.
func textureKsatMultiplier(tc TextureClass) float64 {
	switch tc {
	case TextureSand, TextureLoamySand:
		return 1.8
	case TextureSandyLoam, TextureLoam:
		return 1.2
	case TextureClay, TextureSiltyClay:
		return 0.3
	default:
		return 1.0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
