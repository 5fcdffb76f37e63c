package predictor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrBatchTooLarge is returned when a batch request exceeds the limit.
type ErrBatchTooLarge struct {
	Got   int
	Limit int
}

func (e ErrBatchTooLarge) Error() string {
	return fmt.Sprintf("batch of %d locations exceeds limit of %d", e.Got, e.Limit)
}

// BatchItem is the outcome for one location in a batch. Exactly one of
// Prediction and Error is set.
type BatchItem struct {
	Index      int         `json:"index"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchSummary aggregates the successful predictions of a batch.
type BatchSummary struct {
	Requested  int     `json:"requested"`
	Succeeded  int     `json:"succeeded"`
	Failed     int     `json:"failed"`
	MeanKsat   float64 `json:"mean_ksat_mm_hr"`
	MedianKsat float64 `json:"median_ksat_mm_hr"`
	MinKsat    float64 `json:"min_ksat_mm_hr"`
	MaxKsat    float64 `json:"max_ksat_mm_hr"`
	StdDevKsat float64 `json:"stddev_ksat_mm_hr"`
}

// BatchResult is the full response for a batch prediction request.
type BatchResult struct {
	Items   []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// PredictBatch runs predictions for up to BatchLimit locations. A failing
// location yields an error item without aborting the rest of the batch.
func (s *Service) PredictBatch(ctx context.Context, coords []Coordinate) (BatchResult, error) {
	if len(coords) == 0 {
		return BatchResult{}, fmt.Errorf("batch request contains no locations")
	}
	if len(coords) > s.batchLimit {
		return BatchResult{}, ErrBatchTooLarge{Got: len(coords), Limit: s.batchLimit}
	}

	start := time.Now()
	s.metrics.BatchSize.Observe(float64(len(coords)))

	items := make([]BatchItem, len(coords))
	var ksats []float64
	for i, coord := range coords {
		if ctx.Err() != nil {
			return BatchResult{}, ctx.Err()
		}
		pred, err := s.Predict(ctx, coord)
		if err != nil {
			s.logger.Warn("batch item failed",
				"index", i, "lat", coord.Latitude, "lon", coord.Longitude, "error", err)
			items[i] = BatchItem{Index: i, Error: err.Error()}
			continue
		}
		p := pred
		items[i] = BatchItem{Index: i, Prediction: &p}
		ksats = append(ksats, pred.KsatMmHr)
	}

	s.metrics.BatchDuration.Observe(time.Since(start).Seconds())

	return BatchResult{
		Items:   items,
		Summary: summarize(len(coords), ksats),
	}, nil
}

func summarize(requested int, ksats []float64) BatchSummary {
	summary := BatchSummary{
		Requested: requested,
		Succeeded: len(ksats),
		Failed:    requested - len(ksats),
	}
	if len(ksats) == 0 {
		return summary
	}

	sorted := append([]float64(nil), ksats...)
	sort.Float64s(sorted)

	summary.MeanKsat = stat.Mean(sorted, nil)
	summary.MedianKsat = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	summary.MinKsat = sorted[0]
	summary.MaxKsat = sorted[len(sorted)-1]
	if len(sorted) > 1 {
		summary.StdDevKsat = stat.StdDev(sorted, nil)
	}
	return summary
}
