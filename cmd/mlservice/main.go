package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bhavyaa-1001/Drop2Smart/internal/adapter/groundwater"
	"github.com/bhavyaa-1001/Drop2Smart/internal/adapter/httpapi"
	kafkaadapter "github.com/bhavyaa-1001/Drop2Smart/internal/adapter/kafka"
	"github.com/bhavyaa-1001/Drop2Smart/internal/adapter/openmeteo"
	"github.com/bhavyaa-1001/Drop2Smart/internal/adapter/soilgrids"
	"github.com/bhavyaa-1001/Drop2Smart/internal/config"
	"github.com/bhavyaa-1001/Drop2Smart/internal/modelstore"
	"github.com/bhavyaa-1001/Drop2Smart/internal/observability"
	"github.com/bhavyaa-1001/Drop2Smart/internal/predictor"
	"github.com/bhavyaa-1001/Drop2Smart/internal/regress"
	"github.com/bhavyaa-1001/Drop2Smart/internal/train"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	model, meta, err := loadOrTrainModel(cfg, logger)
	if err != nil {
		logger.Error("failed to prepare model", "error", err)
		os.Exit(1)
	}

	soilClient := soilgrids.NewClient(cfg.SoilGridsTimeout, logger)
	soil := soilgrids.NewCachedProvider(soilClient, cfg.SoilGridsCacheSize, metrics)
	rainfall := openmeteo.NewClient(cfg.OpenMeteoTimeout, logger)

	gwStore, err := loadGroundwater(cfg, logger)
	if err != nil {
		logger.Error("failed to load groundwater data", "error", err)
		os.Exit(1)
	}

	// Prediction event publishing is feature-flagged via KAFKA_ENABLED.
	var publisher predictor.EventPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaPredictionsTopic, logger)
		publisher = kafkaPublisher
		logger.Info("prediction event publishing enabled",
			"brokers", cfg.KafkaBrokers, "topic", cfg.KafkaPredictionsTopic)
	} else {
		logger.Info("prediction event publishing disabled")
	}

	svc := predictor.New(soil, model, meta, publisher, logger, metrics, cfg.BatchLimit)

	h := httpapi.NewHandler(svc, soil, rainfall, gwStore, cfg.RainfallYears, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, h, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadOrTrainModel serves a previously saved model when one exists, and
// otherwise trains on synthetic data and saves the result for the next boot.
func loadOrTrainModel(cfg *config.Config, logger *slog.Logger) (*regress.GBTRegressor, modelstore.Metadata, error) {
	store := modelstore.New(cfg.ModelDir)

	model, meta, err := store.Load()
	if err == nil {
		logger.Info("model loaded",
			"model_id", meta.ModelID, "test_rmse", meta.TestStats.RMSE, "created_at", meta.CreatedAt)
		return model, meta, nil
	}
	if !errors.Is(err, modelstore.ErrNotFound) {
		return nil, modelstore.Metadata{}, err
	}

	logger.Info("no saved model found, training", "samples", cfg.TrainSamples)
	trainCfg := train.DefaultConfig()
	trainCfg.Samples = cfg.TrainSamples
	trainCfg.SearchTrials = cfg.TrainSearchTrials

	res, err := train.Run(logger, trainCfg)
	if err != nil {
		return nil, modelstore.Metadata{}, err
	}
	if err := store.Save(res.Model, res.Metadata); err != nil {
		logger.Warn("could not persist trained model", "error", err)
	}
	return res.Model, res.Metadata, nil
}

func loadGroundwater(cfg *config.Config, logger *slog.Logger) (*groundwater.Store, error) {
	if cfg.GroundwaterDSN != "" {
		repo, err := groundwater.NewPostgresRepository(cfg.GroundwaterDSN)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		logger.Info("loading groundwater data from postgres")
		return repo.LoadStore(context.Background())
	}
	return groundwater.NewStoreFromFile(cfg.GroundwaterDataPath, logger)
}
