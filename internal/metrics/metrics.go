// Package metrics provides Prometheus collectors for the HTTP and analysis
// surfaces.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis type labels.
const (
	AnalysisTypeText = "text"
	AnalysisTypePDF  = "pdf"
)

// Analysis status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the registered Prometheus collectors.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	pitchAnalyses     *prometheus.CounterVec
	pdfProcessingTime prometheus.Histogram
}

// New creates a Metrics with its own registry, including the standard Go and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		pitchAnalyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitch_analyses_total",
			Help: "Pitch analyses by input type and outcome.",
		}, []string{"type", "status"}),
		pdfProcessingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pdf_processing_duration_seconds",
			Help:    "Time spent extracting text from uploaded PDFs.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.pitchAnalyses, m.pdfProcessingTime)
	return m
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, path, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveAnalysis records a completed pitch analysis.
func (m *Metrics) ObserveAnalysis(analysisType string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.pitchAnalyses.WithLabelValues(analysisType, status).Inc()
}

// ObservePDFProcessing records the duration of a PDF extraction.
func (m *Metrics) ObservePDFProcessing(elapsed time.Duration) {
	m.pdfProcessingTime.Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
