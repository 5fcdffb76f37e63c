// Package predictor orchestrates a Ksat prediction: soil lookup,
// normalization, texture classification, regression, and annotation.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/modelstore"
	"github.com/bhavyaa-1001/Drop2Smart/internal/observability"
	"github.com/bhavyaa-1001/Drop2Smart/internal/regress"
)

// degradedNote accompanies predictions for which some soil properties fell
// back to defaults.
const degradedNote = "some soil properties were unavailable; regional defaults were used"

// EventPublisher publishes prediction events for downstream consumers.
type EventPublisher interface {
	PublishPredictions(ctx context.Context, events []domain.PredictionEvent) error
}

// Coordinate is one location in a prediction request.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate is on the globe.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Prediction is the full annotated result for one location.
type Prediction struct {
	PredictionID   string                 `json:"prediction_id"`
	Latitude       float64                `json:"latitude"`
	Longitude      float64                `json:"longitude"`
	KsatMmHr       float64                `json:"ksat_mm_hr"`
	SoilProperties domain.SoilComposition `json:"soil_properties"`
	TextureClass   domain.TextureClass    `json:"soil_texture"`
	TextureEncoded int                    `json:"texture_encoded"`
	Analysis       domain.SoilAnalysis    `json:"soil_analysis"`
	Confidence     float64                `json:"confidence_score"`
	DegradedData   bool                   `json:"degraded_soil_data"`
	Note           string                 `json:"note,omitempty"`
	PredictedAt    time.Time              `json:"predicted_at"`
}

// Service runs predictions against a loaded model.
type Service struct {
	provider   domain.SoilProvider
	model      regress.Regressor
	meta       modelstore.Metadata
	publisher  EventPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	batchLimit int
}

// New creates a prediction service. The publisher may be nil when event
// publishing is disabled.
func New(provider domain.SoilProvider, model regress.Regressor, meta modelstore.Metadata,
	publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics, batchLimit int) *Service {
	s := &Service{
		provider:   provider,
		model:      model,
		meta:       meta,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
		batchLimit: batchLimit,
	}
	if model != nil {
		metrics.ModelReady.Set(1)
	}
	return s
}

// CheckReadiness returns nil if the service can serve predictions.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.model == nil {
		return errors.New("model not loaded")
	}
	return nil
}

// ModelInfo returns the metadata of the serving model.
func (s *Service) ModelInfo() modelstore.Metadata {
	return s.meta
}

// BatchLimit is the maximum number of locations per batch request.
func (s *Service) BatchLimit() int {
	return s.batchLimit
}

// Predict produces an annotated Ksat prediction for one coordinate.
func (s *Service) Predict(ctx context.Context, coord Coordinate) (Prediction, error) {
	if s.model == nil {
		return Prediction{}, errors.New("model not loaded")
	}

	start := time.Now()
	raw, err := s.provider.SoilProperties(ctx, coord.Latitude, coord.Longitude)
	s.metrics.SoilAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.SoilLookups.WithLabelValues("error").Inc()
		s.metrics.Predictions.WithLabelValues("error").Inc()
		return Prediction{}, fmt.Errorf("fetching soil properties: %w", err)
	}

	degraded := raw.Degraded()
	if degraded {
		s.metrics.SoilLookups.WithLabelValues("degraded").Inc()
	} else {
		s.metrics.SoilLookups.WithLabelValues("complete").Inc()
	}

	comp := domain.NormalizeSoilProperties(raw)
	texture, encoded := comp.Texture()
	ksat := regress.ClampPrediction(s.model.Predict(comp.FeatureVector()))

	analysis := domain.AnnotateSoil(ksat, comp, texture)
	confidence := domain.ConfidenceScore(ksat, comp)
	if degraded {
		confidence -= 0.1
		if confidence < 0.5 {
			confidence = 0.5
		}
	}

	pred := Prediction{
		PredictionID:   uuid.NewString(),
		Latitude:       coord.Latitude,
		Longitude:      coord.Longitude,
		KsatMmHr:       ksat,
		SoilProperties: comp,
		TextureClass:   texture,
		TextureEncoded: encoded,
		Analysis:       analysis,
		Confidence:     confidence,
		DegradedData:   degraded,
		PredictedAt:    domain.Now(),
	}
	if degraded {
		pred.Note = degradedNote
	}

	s.metrics.Predictions.WithLabelValues("success").Inc()
	s.metrics.PredictionsValue.Observe(ksat)
	s.publish(ctx, []Prediction{pred})

	s.logger.Debug("prediction served",
		"lat", coord.Latitude, "lon", coord.Longitude,
		"ksat", ksat, "texture", texture, "degraded", degraded)
	return pred, nil
}

func (s *Service) publish(ctx context.Context, preds []Prediction) {
	if s.publisher == nil {
		return
	}
	events := make([]domain.PredictionEvent, len(preds))
	for i, p := range preds {
		events[i] = domain.PredictionEvent{
			ID:          p.PredictionID,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			KsatMmHr:    p.KsatMmHr,
			Texture:     string(p.TextureClass),
			Degraded:    p.DegradedData,
			ModelID:     s.meta.ModelID,
			PredictedAt: p.PredictedAt,
		}
	}
	if err := s.publisher.PublishPredictions(ctx, events); err != nil {
		s.metrics.EventPublishErrs.Inc()
		s.logger.Error("publishing prediction events", "error", err, "count", len(events))
		return
	}
	s.metrics.EventsPublished.Add(float64(len(events)))
}
