package regress

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Objective scores a hyperparameter configuration; lower is better.
type Objective func(hp Hyperparameters) float64

// Optimizer minimizes an objective within a fixed trial budget.
type Optimizer interface {
	Minimize(obj Objective, trials int) Hyperparameters
}

// RandomSearch draws hyperparameter candidates uniformly from fixed ranges.
// The shipped defaults are always evaluated first so a search can only
// improve on them.
type RandomSearch struct {
	Seed uint64
}

func (s RandomSearch) Minimize(obj Objective, trials int) Hyperparameters {
	best := DefaultHyperparameters()
	bestScore := obj(best)

	rng := rand.New(rand.NewSource(s.Seed))
	for t := 1; t < trials; t++ {
		hp := Hyperparameters{
			MaxDepth:       3 + rng.Intn(8),                // [3, 10]
			LearningRate:   math.Exp(uniform(rng, math.Log(0.01), math.Log(0.3))),
			NEstimators:    100 + rng.Intn(901),            // [100, 1000]
			Subsample:      uniform(rng, 0.6, 1.0),
			Gamma:          uniform(rng, 0, 0.5),
			RegLambda:      math.Exp(uniform(rng, math.Log(0.1), math.Log(10))),
			MinChildWeight: 1 + rng.Intn(10),               // [1, 10]
			Seed:           best.Seed,
		}
		if score := obj(hp); score < bestScore {
			bestScore = score
			best = hp
		}
	}
	return best
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// CrossValidationRMSE builds an objective that scores a configuration by
// k-fold cross-validated RMSE over the given training set. Fold assignment
// is deterministic for a fixed seed.
func CrossValidationRMSE(x [][]float64, y []float64, folds int, seed uint64) Objective {
	perm := make([]int, len(y))
	for i := range perm {
		perm[i] = i
	}
	rand.New(rand.NewSource(seed)).Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	return func(hp Hyperparameters) float64 {
		if folds < 2 || len(y) < folds {
			return math.Inf(1)
		}
		total := 0.0
		for k := 0; k < folds; k++ {
			lo := k * len(perm) / folds
			hi := (k + 1) * len(perm) / folds

			var trX [][]float64
			var trY, teY []float64
			var teX [][]float64
			for p, i := range perm {
				if p >= lo && p < hi {
					teX = append(teX, x[i])
					teY = append(teY, y[i])
				} else {
					trX = append(trX, x[i])
					trY = append(trY, y[i])
				}
			}

			m, err := FitGBT(trX, trY, hp)
			if err != nil {
				return math.Inf(1)
			}
			pred := make([]float64, len(teY))
			for i, row := range teX {
				pred[i] = m.Predict(row)
			}
			total += RMSE(teY, pred)
		}
		return total / float64(folds)
	}
}

// RMSE is the root mean squared error between targets and predictions.
func RMSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(yTrue)))
}

// MAE is the mean absolute error between targets and predictions.
func MAE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// R2 is the coefficient of determination of predictions against targets.
func R2(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}
