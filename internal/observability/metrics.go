package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction service.
type Metrics struct {
	Predictions      *prometheus.CounterVec // labels: outcome={success,error}
	PredictionsValue prometheus.Histogram
	ModelReady       prometheus.Gauge

	// Batch endpoint metrics.
	BatchSize     prometheus.Histogram
	BatchDuration prometheus.Histogram

	// Soil data lookups.
	SoilLookups      *prometheus.CounterVec // labels: outcome={complete,degraded,error}
	SoilLookupCache  *prometheus.CounterVec // labels: result={hit,miss}
	SoilAPIDuration  prometheus.Histogram
	EventsPublished  prometheus.Counter
	EventPublishErrs prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ksat_service",
			Name:      "predictions_total",
			Help:      "Ksat predictions served by outcome.",
		}, []string{"outcome"}),
		PredictionsValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ksat_service",
			Name:      "prediction_ksat_mm_hr",
			Help:      "Distribution of served Ksat predictions in mm/hr.",
			Buckets:   []float64{1, 5, 10, 20, 50, 100, 150, 200, 300},
		}),
		ModelReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ksat_service",
			Name:      "model_ready",
			Help:      "1 when a model is loaded and servable, 0 otherwise.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ksat_service",
			Name:      "batch_size",
			Help:      "Number of locations per batch prediction request.",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100},
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ksat_service",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete batch prediction request.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		SoilLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ksat_service",
			Name:      "soil_lookups_total",
			Help:      "SoilGrids lookups by outcome.",
		}, []string{"outcome"}),
		SoilLookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ksat_service",
			Name:      "soil_lookup_cache_total",
			Help:      "Soil property cache lookups by result.",
		}, []string{"result"}),
		SoilAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ksat_service",
			Name:      "soil_api_duration_seconds",
			Help:      "SoilGrids API lookup duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ksat_service",
			Name:      "events_published_total",
			Help:      "Prediction events published to Kafka.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ksat_service",
			Name:      "event_publish_errors_total",
			Help:      "Failed prediction event publishes.",
		}),
	}

	prometheus.MustRegister(
		m.Predictions,
		m.PredictionsValue,
		m.ModelReady,
		m.BatchSize,
		m.BatchDuration,
		m.SoilLookups,
		m.SoilLookupCache,
		m.SoilAPIDuration,
		m.EventsPublished,
		m.EventPublishErrs,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Predictions:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ksat_service", Name: "predictions_total"}, []string{"outcome"}),
		PredictionsValue: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ksat_service", Name: "prediction_ksat_mm_hr"}),
		ModelReady:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ksat_service", Name: "model_ready"}),
		BatchSize:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ksat_service", Name: "batch_size"}),
		BatchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ksat_service", Name: "batch_duration_seconds"}),
		SoilLookups:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ksat_service", Name: "soil_lookups_total"}, []string{"outcome"}),
		SoilLookupCache:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ksat_service", Name: "soil_lookup_cache_total"}, []string{"result"}),
		SoilAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ksat_service", Name: "soil_api_duration_seconds"}),
		EventsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ksat_service", Name: "events_published_total"}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ksat_service", Name: "event_publish_errors_total"}),
	}
}
