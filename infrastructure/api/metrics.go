package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timsexperiments/sitenav/application/service"
	v1 "github.com/timsexperiments/sitenav/infrastructure/api/v1"
)

// Metrics holds the preview server collectors on an isolated registry so
// they never collide with an embedding program's default registry.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	ValidationsTotal    *prometheus.CounterVec
	ValidationErrors    *prometheus.GaugeVec
	SidebarLeaves       prometheus.Gauge
	OrphanDocuments     prometheus.Gauge
	LastValidationStamp prometheus.Gauge

	BuildInfo *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them. version and
// goVersion label the sitenav_info gauge.
func NewMetrics(version, goVersion string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitenav_http_requests_total",
				Help: "HTTP requests served, by method, route pattern and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitenav_http_request_duration_seconds",
				Help:    "HTTP request latency, by method and route pattern.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"method", "route"},
		),
		ValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitenav_validations_total",
				Help: "Sidebar validations run, by result.",
			},
			[]string{"result"},
		),
		ValidationErrors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sitenav_validation_errors",
				Help: "Errors found by the latest validation, by kind.",
			},
			[]string{"kind"},
		),
		SidebarLeaves: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitenav_sidebar_leaves",
			Help: "Sidebar entries that link to a document.",
		}),
		OrphanDocuments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitenav_orphan_documents",
			Help: "Documents under the content root missing from the sidebar.",
		}),
		LastValidationStamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sitenav_last_validation_timestamp_seconds",
			Help: "Unix time of the latest validation.",
		}),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sitenav_info",
				Help: "Build information.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.ValidationsTotal,
		m.ValidationErrors,
		m.SidebarLeaves,
		m.OrphanDocuments,
		m.LastValidationStamp,
		m.BuildInfo,
	)

	m.BuildInfo.WithLabelValues(version, goVersion).Set(1)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Instrument records request counts and latency per route pattern.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveValidation records the outcome of a validation.
func (m *Metrics) ObserveValidation(report service.Report) {
	result := "valid"
	if !report.Valid() {
		result = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()

	m.ValidationErrors.Reset()
	for _, kind := range []string{v1.KindDuplicateSlug, v1.KindMissingContent, v1.KindMalformedNode, v1.KindInvalidSite, v1.KindContentLookup} {
		m.ValidationErrors.WithLabelValues(kind).Set(0)
	}
	for _, err := range report.Errors() {
		m.ValidationErrors.WithLabelValues(v1.NewValidationErrorResponse(err).Kind).Inc()
	}

	m.SidebarLeaves.Set(float64(report.Leaves()))
	m.OrphanDocuments.Set(float64(len(report.Orphans())))
	m.LastValidationStamp.SetToCurrentTime()
}
