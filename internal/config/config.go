package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SoilGrids lookups.
	SoilGridsTimeout   time.Duration
	SoilGridsCacheSize int

	// Open-Meteo rainfall history.
	OpenMeteoTimeout time.Duration
	RainfallYears    int

	// Model persistence and first-boot training.
	ModelDir          string
	TrainSamples      int
	TrainSearchTrials int

	// Groundwater assessment data. DSN is optional; when set the Postgres
	// repository replaces the JSON file.
	GroundwaterDataPath string
	GroundwaterDSN      string

	// Prediction event publishing.
	KafkaEnabled          bool
	KafkaBrokers          []string
	KafkaPredictionsTopic string

	BatchLimit int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	soilGridsTimeout, err := parseDuration("SOILGRIDS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	openMeteoTimeout, err := parseDuration("OPENMETEO_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	rainfallYears, err := parsePositiveInt("RAINFALL_YEARS", 30)
	if err != nil {
		return nil, err
	}
	trainSamples, err := parsePositiveInt("TRAIN_SAMPLES", 2000)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("SOILGRIDS_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	batchLimit, err := parsePositiveInt("BATCH_LIMIT", 100)
	if err != nil {
		return nil, err
	}

	searchTrials := 0
	if s := os.Getenv("TRAIN_SEARCH_TRIALS"); s != "" {
		n, parseErr := strconv.Atoi(s)
		if parseErr != nil || n < 0 {
			return nil, errors.New("invalid TRAIN_SEARCH_TRIALS")
		}
		searchTrials = n
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8000"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SoilGridsTimeout:   soilGridsTimeout,
		SoilGridsCacheSize: cacheSize,

		OpenMeteoTimeout: openMeteoTimeout,
		RainfallYears:    rainfallYears,

		ModelDir:          envOrDefault("MODEL_DIR", "models"),
		TrainSamples:      trainSamples,
		TrainSearchTrials: searchTrials,

		GroundwaterDataPath: envOrDefault("GROUNDWATER_DATA_PATH", "data/groundwater_level_data.json"),
		GroundwaterDSN:      os.Getenv("GROUNDWATER_DSN"),

		KafkaEnabled:          os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:          parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaPredictionsTopic: envOrDefault("KAFKA_PREDICTIONS_TOPIC", "ksat-predictions"),

		BatchLimit: batchLimit,
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaPredictionsTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_PREDICTIONS_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
