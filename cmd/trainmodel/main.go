// Command trainmodel trains a Ksat model offline and writes it to a model
// directory the service can load at boot.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/bhavyaa-1001/Drop2Smart/internal/modelstore"
	"github.com/bhavyaa-1001/Drop2Smart/internal/train"
)

func main() {
	var (
		samples = flag.Int("samples", 2000, "synthetic training samples")
		seed    = flag.Uint64("seed", 42, "random seed for data generation and splitting")
		trials  = flag.Int("trials", 0, "hyperparameter search trials (0 uses shipped defaults)")
		folds   = flag.Int("folds", 5, "cross-validation folds during search")
		outDir  = flag.String("out", "models", "output model directory")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := train.Config{
		Samples:      *samples,
		Seed:         *seed,
		SearchTrials: *trials,
		Folds:        *folds,
		TestFraction: 0.2,
	}

	res, err := train.Run(logger, cfg)
	if err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}

	store := modelstore.New(*outDir)
	if err := store.Save(res.Model, res.Metadata); err != nil {
		logger.Error("saving model failed", "error", err)
		os.Exit(1)
	}

	logger.Info("model saved",
		"dir", *outDir,
		"model_id", res.Metadata.ModelID,
		"test_rmse", res.Metadata.TestStats.RMSE,
		"test_r2", res.Metadata.TestStats.R2)
}
