// Package modelstore persists fitted models to disk alongside a metadata
// record describing how they were trained. A model is only servable together
// with its metadata: the feature order and texture encoding table it was
// trained against must match the running service.
package modelstore

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/regress"
)

const (
	modelFile    = "ksat_model.gob"
	metadataFile = "ksat_model_metadata.json"

	modelType = "gradient_boosted_trees"
)

// ErrNotFound is returned by Load when no saved model exists at the path.
var ErrNotFound = errors.New("modelstore: no saved model")

// Metadata describes a persisted model.
type Metadata struct {
	ModelID             string                 `json:"model_id"`
	ModelType           string                 `json:"model_type"`
	Features            []string               `json:"features"`
	TextureTableVersion string                 `json:"texture_table_version"`
	Hyperparameters     regress.Hyperparameters `json:"hyperparameters"`
	TrainStats          regress.EvalStats      `json:"train_stats"`
	TestStats           regress.EvalStats      `json:"test_stats"`
	NSamples            int                    `json:"n_samples"`
	Synthetic           bool                   `json:"synthetic_training_data"`
	CreatedAt           time.Time              `json:"created_at"`
}

// NewMetadata stamps a fresh metadata record for a model trained now, with
// the service's current feature contract and texture table.
func NewMetadata(hp regress.Hyperparameters, train, test regress.EvalStats, nSamples int, synthetic bool) Metadata {
	return Metadata{
		ModelID:             uuid.NewString(),
		ModelType:           modelType,
		Features:            append([]string(nil), domain.FeatureNames...),
		TextureTableVersion: domain.TextureTableVersion,
		Hyperparameters:     hp,
		TrainStats:          train,
		TestStats:           test,
		NSamples:            nSamples,
		Synthetic:           synthetic,
		CreatedAt:           domain.Now(),
	}
}

// Store reads and writes models under a single directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the model and its metadata. The metadata is written last so a
// readable metadata file implies a complete model file.
func (s *Store) Save(m *regress.GBTRegressor, meta Metadata) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, modelFile))
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing model file: %w", err)
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, metadataFile), raw, 0o644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// Load reads a previously saved model and its metadata. A missing model or
// metadata file yields ErrNotFound; a texture table mismatch is an error
// because the stored encoding no longer matches the running service.
func (s *Store) Load() (*regress.GBTRegressor, Metadata, error) {
	var meta Metadata
	raw, err := os.ReadFile(filepath.Join(s.dir, metadataFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, meta, ErrNotFound
	}
	if err != nil {
		return nil, meta, fmt.Errorf("reading metadata: %w", err)
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, meta, fmt.Errorf("decoding metadata: %w", err)
	}
	if meta.TextureTableVersion != domain.TextureTableVersion {
		return nil, meta, fmt.Errorf("modelstore: texture table %q does not match %q",
			meta.TextureTableVersion, domain.TextureTableVersion)
	}

	f, err := os.Open(filepath.Join(s.dir, modelFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, meta, ErrNotFound
	}
	if err != nil {
		return nil, meta, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	var m regress.GBTRegressor
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, meta, fmt.Errorf("decoding model: %w", err)
	}
	return &m, meta, nil
}
