package predictor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
	"github.com/bhavyaa-1001/Drop2Smart/internal/modelstore"
	"github.com/bhavyaa-1001/Drop2Smart/internal/observability"
	"github.com/bhavyaa-1001/Drop2Smart/internal/regress"
)

// --- mocks ---

type stubProvider struct {
	result domain.RawSoilProperties
	err    error
	calls  int
}

func (p *stubProvider) SoilProperties(_ context.Context, _, _ float64) (domain.RawSoilProperties, error) {
	p.calls++
	return p.result, p.err
}

// fixedModel always predicts the same raw value.
type fixedModel struct {
	value float64
}

func (m fixedModel) Predict(_ []float64) float64 { return m.value }

type capturingPublisher struct {
	events []domain.PredictionEvent
	err    error
}

func (p *capturingPublisher) PublishPredictions(_ context.Context, events []domain.PredictionEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func completeProps() domain.RawSoilProperties {
	sand, silt, clay, ocd := 400.0, 350.0, 250.0, 15.0
	return domain.RawSoilProperties{Sand: &sand, Silt: &silt, Clay: &clay, OCD: &ocd}
}

func testService(provider domain.SoilProvider, model regress.Regressor, publisher EventPublisher) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	meta := modelstore.Metadata{ModelID: "test-model"}
	return New(provider, model, meta, publisher, logger, observability.NewMetricsForTesting(), 100)
}

// --- tests ---

func TestPredict_Success(t *testing.T) {
	provider := &stubProvider{result: completeProps()}
	svc := testService(provider, fixedModel{value: 84.3}, nil)

	pred, err := svc.Predict(context.Background(), Coordinate{Latitude: 21.1458, Longitude: 79.0882})
	require.NoError(t, err)

	assert.NotEmpty(t, pred.PredictionID)
	assert.Equal(t, 84.3, pred.KsatMmHr)
	assert.Equal(t, 40.0, pred.SoilProperties.SandPct)
	assert.Equal(t, 35.0, pred.SoilProperties.SiltPct)
	assert.Equal(t, 25.0, pred.SoilProperties.ClayPct)
	assert.Equal(t, domain.TextureLoam, pred.TextureClass)
	assert.Equal(t, "Moderate", pred.Analysis.InfiltrationCategory)
	assert.False(t, pred.DegradedData)
	assert.Empty(t, pred.Note)
	assert.InDelta(t, 0.95, pred.Confidence, 1e-9)
	assert.False(t, pred.PredictedAt.IsZero())
}

func TestPredict_TimestampFollowsClock(t *testing.T) {
	frozen := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	provider := &stubProvider{result: completeProps()}
	svc := testService(provider, fixedModel{value: 84.3}, nil)

	pred, err := svc.Predict(context.Background(), Coordinate{Latitude: 21.1458, Longitude: 79.0882})
	require.NoError(t, err)
	assert.Equal(t, frozen, pred.PredictedAt)
}

func TestPredict_ClampsModelOutput(t *testing.T) {
	provider := &stubProvider{result: completeProps()}

	low := testService(provider, fixedModel{value: -50}, nil)
	pred, err := low.Predict(context.Background(), Coordinate{Latitude: 10, Longitude: 10})
	require.NoError(t, err)
	assert.Equal(t, regress.ServingKsatMin, pred.KsatMmHr)

	high := testService(provider, fixedModel{value: 5000}, nil)
	pred, err = high.Predict(context.Background(), Coordinate{Latitude: 10, Longitude: 10})
	require.NoError(t, err)
	assert.Equal(t, regress.ServingKsatMax, pred.KsatMmHr)
}

func TestPredict_DegradedSoilData(t *testing.T) {
	sand := 400.0
	provider := &stubProvider{result: domain.RawSoilProperties{Sand: &sand}}
	svc := testService(provider, fixedModel{value: 80}, nil)

	pred, err := svc.Predict(context.Background(), Coordinate{Latitude: 10, Longitude: 10})
	require.NoError(t, err)

	assert.True(t, pred.DegradedData)
	assert.Equal(t, degradedNote, pred.Note)
	// Defaults still classify to LOAM with a full confidence bonus, minus
	// the degraded penalty.
	assert.InDelta(t, 0.85, pred.Confidence, 1e-9)
	assert.Equal(t, 35.0, pred.SoilProperties.SiltPct, "missing fields use defaults")
}

func TestPredict_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	svc := testService(provider, fixedModel{value: 80}, nil)

	_, err := svc.Predict(context.Background(), Coordinate{Latitude: 10, Longitude: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soil properties")
}

func TestPredict_NoModel(t *testing.T) {
	svc := testService(&stubProvider{result: completeProps()}, nil, nil)

	_, err := svc.Predict(context.Background(), Coordinate{Latitude: 10, Longitude: 10})
	require.Error(t, err)
	assert.ErrorContains(t, err, "model not loaded")
	assert.Error(t, svc.CheckReadiness(context.Background()))
}

func TestCheckReadiness(t *testing.T) {
	svc := testService(&stubProvider{result: completeProps()}, fixedModel{value: 50}, nil)
	assert.NoError(t, svc.CheckReadiness(context.Background()))
}

func TestPredict_PublishesEvent(t *testing.T) {
	publisher := &capturingPublisher{}
	provider := &stubProvider{result: completeProps()}
	svc := testService(provider, fixedModel{value: 84.3}, publisher)

	pred, err := svc.Predict(context.Background(), Coordinate{Latitude: 21.1, Longitude: 79.1})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, pred.PredictionID, event.ID)
	assert.Equal(t, 84.3, event.KsatMmHr)
	assert.Equal(t, "LOAM", event.Texture)
	assert.Equal(t, "test-model", event.ModelID)
}

func TestPredict_PublishFailureDoesNotFailPrediction(t *testing.T) {
	publisher := &capturingPublisher{err: errors.New("broker down")}
	provider := &stubProvider{result: completeProps()}
	svc := testService(provider, fixedModel{value: 84.3}, publisher)

	_, err := svc.Predict(context.Background(), Coordinate{Latitude: 21.1, Longitude: 79.1})
	assert.NoError(t, err)
}

func TestModelInfo(t *testing.T) {
	svc := testService(&stubProvider{}, fixedModel{value: 50}, nil)
	assert.Equal(t, "test-model", svc.ModelInfo().ModelID)
	assert.Equal(t, 100, svc.BatchLimit())
}
