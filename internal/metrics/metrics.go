package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the photo grid.
type Metrics struct {
	Registry          *prometheus.Registry
	FetchesTotal      *prometheus.CounterVec
	FetchDuration     prometheus.Histogram
	FetchErrorsTotal  *prometheus.CounterVec
	PhotosAccumulated prometheus.Gauge
	NextPage          prometheus.Gauge
	EndReachedTotal   *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picsum_fetches_total",
			Help: "Total page fetches by outcome.",
		},
		[]string{"outcome"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "picsum_fetch_duration_seconds",
			Help:    "Latency of photo list requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	fetchErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picsum_fetch_errors_total",
			Help: "Failed page fetches by error type.",
		},
		[]string{"error_type"},
	)
	photos := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "picsum_photos_accumulated",
			Help: "Number of photos currently held in the grid.",
		},
	)
	nextPage := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "picsum_next_page",
			Help: "Page number the next fetch will request.",
		},
	)
	endReached := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picsum_end_reached_total",
			Help: "Near-end signals received from the grid, by result.",
		},
		[]string{"result"},
	)

	registry.MustRegister(fetches, duration, fetchErrors, photos, nextPage, endReached)

	return &Metrics{
		Registry:          registry,
		FetchesTotal:      fetches,
		FetchDuration:     duration,
		FetchErrorsTotal:  fetchErrors,
		PhotosAccumulated: photos,
		NextPage:          nextPage,
		EndReachedTotal:   endReached,
	}
}

func (m *Metrics) IncFetch(outcome string) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.FetchErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetAccumulated records the size of the photo list and the page counter.
func (m *Metrics) SetAccumulated(photos, nextPage int) {
	if m == nil {
		return
	}
	m.PhotosAccumulated.Set(float64(photos))
	m.NextPage.Set(float64(nextPage))
}

func (m *Metrics) IncEndReached(result string) {
	if m == nil {
		return
	}
	m.EndReachedTotal.WithLabelValues(result).Inc()
}
