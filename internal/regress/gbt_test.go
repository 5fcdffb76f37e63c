package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
)

func testHyperparameters() Hyperparameters {
	hp := DefaultHyperparameters()
	hp.NEstimators = 60
	hp.MaxDepth = 4
	return hp
}

func TestFitGBTLearnsSyntheticSignal(t *testing.T) {
	x, y := domain.GenerateSynthetic(400, 7)

	m, err := FitGBT(x, y, testHyperparameters())
	require.NoError(t, err)

	pred := make([]float64, len(y))
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	baseline := make([]float64, len(y))
	for i, row := range x {
		pred[i] = m.Predict(row)
		baseline[i] = mean
	}

	assert.Less(t, RMSE(y, pred), RMSE(y, baseline),
		"fitted model should beat predicting the mean")
	assert.Greater(t, R2(y, pred), 0.5)
}

func TestFitGBTDeterministic(t *testing.T) {
	x, y := domain.GenerateSynthetic(200, 11)
	hp := testHyperparameters()

	a, err := FitGBT(x, y, hp)
	require.NoError(t, err)
	b, err := FitGBT(x, y, hp)
	require.NoError(t, err)

	probe := []float64{25, 35, 40, 2, 1.5}
	assert.Equal(t, a.Predict(probe), b.Predict(probe))
	assert.Len(t, a.Trees, hp.NEstimators)
}

func TestFitGBTInputValidation(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		_, err := FitGBT(nil, nil, testHyperparameters())
		assert.ErrorIs(t, err, ErrNoTrainingData)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := FitGBT([][]float64{{1, 2}}, []float64{1, 2}, testHyperparameters())
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := FitGBT([][]float64{{1, 2}, {1}}, []float64{1, 2}, testHyperparameters())
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestPredictWrongWidthFallsBackToBase(t *testing.T) {
	x, y := domain.GenerateSynthetic(100, 3)
	m, err := FitGBT(x, y, testHyperparameters())
	require.NoError(t, err)

	assert.Equal(t, m.Base, m.Predict([]float64{1, 2}))
}

func TestClampPrediction(t *testing.T) {
	assert.Equal(t, ServingKsatMin, ClampPrediction(0.2))
	assert.Equal(t, ServingKsatMax, ClampPrediction(512))
	assert.Equal(t, 42.5, ClampPrediction(42.5))
}
