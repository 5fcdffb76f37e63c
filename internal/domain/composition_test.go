package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestNormalizeSoilProperties(t *testing.T) {
	t.Run("converts raw scales", func(t *testing.T) {
		comp := NormalizeSoilProperties(RawSoilProperties{
			Sand: fptr(850),
			Silt: fptr(100),
			Clay: fptr(50),
			OCD:  fptr(30),
		})

		assert.Equal(t, 85.0, comp.SandPct)
		assert.Equal(t, 10.0, comp.SiltPct)
		assert.Equal(t, 5.0, comp.ClayPct)
		assert.InDelta(t, 0.03, comp.OrganicCarbon, 1e-12)
	})

	t.Run("all fields missing fall back to defaults", func(t *testing.T) {
		comp := NormalizeSoilProperties(RawSoilProperties{})

		assert.Equal(t, 40.0, comp.SandPct)
		assert.Equal(t, 35.0, comp.SiltPct)
		assert.Equal(t, 25.0, comp.ClayPct)
		assert.InDelta(t, 0.015, comp.OrganicCarbon, 1e-12)
	})

	t.Run("fallback is per-field", func(t *testing.T) {
		comp := NormalizeSoilProperties(RawSoilProperties{
			Sand: fptr(600),
			OCD:  fptr(20),
		})

		assert.Equal(t, 60.0, comp.SandPct)
		assert.Equal(t, 35.0, comp.SiltPct) // default
		assert.Equal(t, 25.0, comp.ClayPct) // default
		assert.InDelta(t, 0.02, comp.OrganicCarbon, 1e-12)
	})
}

func TestRawSoilProperties_Degraded(t *testing.T) {
	full := RawSoilProperties{Sand: fptr(1), Silt: fptr(1), Clay: fptr(1), OCD: fptr(1)}
	assert.False(t, full.Degraded())

	partial := full
	partial.Silt = nil
	assert.True(t, partial.Degraded())
	assert.True(t, RawSoilProperties{}.Degraded())
}

func TestFeatureVector_Order(t *testing.T) {
	comp := SoilComposition{SandPct: 85, SiltPct: 10, ClayPct: 5, OrganicCarbon: 1.2}

	fv := comp.FeatureVector()

	assert.Equal(t, []float64{5, 10, 85, 4, 1.2}, fv, "order must be Clay, Silt, Sand, Texture Encoded, OC")
	assert.Len(t, FeatureNames, len(fv))
}

// The default composition (40/35/25) lands on the LOAM-adjacent rule of the
// cascade: clay in [20,27) with mid silt and sand at most 52.
func TestDefaultComposition_ClassifiesLoam(t *testing.T) {
	comp := NormalizeSoilProperties(RawSoilProperties{})
	label, code := comp.Texture()

	assert.Equal(t, TextureLoam, label)
	assert.Equal(t, 2, code)
}
