package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the process counters on a dedicated registry so tests can
// hold isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsProcessed *prometheus.CounterVec
	ExtractDuration    prometheus.Histogram
	BatchRuns          prometheus.Counter
	FilesCopied        prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	documentsProcessed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "invfrog",
			Name:      "documents_processed_total",
			Help:      "Total documents run through the pipeline by status.",
		},
		[]string{"status"},
	)
	extractDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "invfrog",
			Name:      "extract_duration_seconds",
			Help:      "Per-document pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	batchRuns := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invfrog",
			Name:      "batch_runs_total",
			Help:      "Total batch runs started.",
		},
	)
	filesCopied := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "invfrog",
			Name:      "files_copied_total",
			Help:      "Total files placed at their destination.",
		},
	)

	registry.MustRegister(documentsProcessed, extractDuration, batchRuns, filesCopied)

	return &Metrics{
		registry:           registry,
		DocumentsProcessed: documentsProcessed,
		ExtractDuration:    extractDuration,
		BatchRuns:          batchRuns,
		FilesCopied:        filesCopied,
	}
}

// Handler serves the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
