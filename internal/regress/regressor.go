// Package regress wraps the gradient-boosted regression model behind small
// fit/predict interfaces so the serving path never depends on the learner's
// internals, and clamps every served prediction into the physically sensible
// Ksat band.
package regress

// Serving bounds in mm/hr. Every prediction returned to callers is clamped
// into this band; the wider synthetic-data range stays training-only.
const (
	ServingKsatMin = 1.0
	ServingKsatMax = 300.0
)

// Regressor predicts a target value from an ordered feature vector.
// Implementations must be safe for concurrent use after fitting.
type Regressor interface {
	Predict(features []float64) float64
}

// Hyperparameters configure the boosted ensemble. Field meanings follow the
// usual gradient-boosting conventions; zero values are not valid, use
// DefaultHyperparameters as a base.
type Hyperparameters struct {
	MaxDepth       int     `json:"max_depth"`
	LearningRate   float64 `json:"learning_rate"`
	NEstimators    int     `json:"n_estimators"`
	Subsample      float64 `json:"subsample"`
	Gamma          float64 `json:"gamma"`
	RegLambda      float64 `json:"reg_lambda"`
	MinChildWeight int     `json:"min_child_weight"`
	Seed           uint64  `json:"random_state"`
}

// DefaultHyperparameters returns the tuned configuration the service ships
// with, found by an earlier offline search.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		MaxDepth:       8,
		LearningRate:   0.1,
		NEstimators:    500,
		Subsample:      0.8,
		Gamma:          0.1,
		RegLambda:      1.0,
		MinChildWeight: 3,
		Seed:           42,
	}
}

// ClampPrediction forces a raw model output into the serving band.
// Out-of-band predictions are a recovered condition, never an error.
func ClampPrediction(v float64) float64 {
	if v < ServingKsatMin {
		return ServingKsatMin
	}
	if v > ServingKsatMax {
		return ServingKsatMax
	}
	return v
}
