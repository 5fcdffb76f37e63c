// Package train builds a servable Ksat model end to end: dataset generation,
// optional hyperparameter search, fitting, and held-out evaluation.
package train

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/modelstore"
	"github.com/bhavyaa-1001/Drop2Smart/internal/regress"
)

// Config controls a training run.
type Config struct {
	// Samples is the synthetic dataset size.
	Samples int
	// Seed drives dataset generation and the train/test split.
	Seed uint64
	// SearchTrials enables hyperparameter search when greater than 1;
	// otherwise the shipped defaults are used as-is.
	SearchTrials int
	// Folds is the cross-validation fold count during search.
	Folds int
	// TestFraction of samples held out for final evaluation.
	TestFraction float64
}

// DefaultConfig matches the settings the service trains with on first boot.
func DefaultConfig() Config {
	return Config{
		Samples:      2000,
		Seed:         42,
		SearchTrials: 0,
		Folds:        5,
		TestFraction: 0.2,
	}
}

// Result carries a fitted model together with its metadata record.
type Result struct {
	Model    *regress.GBTRegressor
	Metadata modelstore.Metadata
}

// Run trains a model on synthetic data per the config and returns it with
// evaluation stats on a held-out split. Runs are deterministic for a fixed
// config.
func Run(logger *slog.Logger, cfg Config) (Result, error) {
	if cfg.Samples < 10 {
		return Result{}, fmt.Errorf("train: sample count %d too small", cfg.Samples)
	}
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		return Result{}, fmt.Errorf("train: test fraction %v out of (0, 1)", cfg.TestFraction)
	}

	logger.Info("generating training data", "samples", cfg.Samples, "seed", cfg.Seed)
	x, y := domain.GenerateSynthetic(cfg.Samples, cfg.Seed)
	trX, trY, teX, teY := split(x, y, cfg.TestFraction, cfg.Seed)

	hp := regress.DefaultHyperparameters()
	hp.Seed = cfg.Seed
	if cfg.SearchTrials > 1 {
		logger.Info("searching hyperparameters", "trials", cfg.SearchTrials, "folds", cfg.Folds)
		obj := regress.CrossValidationRMSE(trX, trY, cfg.Folds, cfg.Seed)
		hp = regress.RandomSearch{Seed: cfg.Seed}.Minimize(obj, cfg.SearchTrials)
		logger.Info("search finished",
			"max_depth", hp.MaxDepth,
			"learning_rate", hp.LearningRate,
			"n_estimators", hp.NEstimators)
	}

	logger.Info("fitting model", "train_samples", len(trY), "test_samples", len(teY))
	model, err := regress.FitGBT(trX, trY, hp)
	if err != nil {
		return Result{}, fmt.Errorf("fitting model: %w", err)
	}

	trainStats := regress.Evaluate(model, trX, trY)
	testStats := regress.Evaluate(model, teX, teY)
	logger.Info("model evaluated",
		"train_rmse", trainStats.RMSE,
		"test_rmse", testStats.RMSE,
		"test_r2", testStats.R2)

	return Result{
		Model:    model,
		Metadata: modelstore.NewMetadata(hp, trainStats, testStats, cfg.Samples, true),
	}, nil
}

func split(x [][]float64, y []float64, testFrac float64, seed uint64) (trX [][]float64, trY []float64, teX [][]float64, teY []float64) {
	perm := rand.New(rand.NewSource(seed)).Perm(len(y))
	nTest := int(float64(len(y)) * testFrac)
	if nTest < 1 {
		nTest = 1
	}
	for p, i := range perm {
		if p < nTest {
			teX = append(teX, x[i])
			teY = append(teY, y[i])
		} else {
			trX = append(trX, x[i])
			trY = append(trY, y[i])
		}
	}
	return trX, trY, teX, teY
}
