// Package metrics holds the Prometheus instruments of the registration service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for RegistrationsTotal.
const (
	OutcomeSaved   = "saved"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics provides observability for the registration service.
type Metrics struct {
	registry prometheus.Gatherer

	RegistrationsTotal *prometheus.CounterVec
	StoreDuration      prometheus.Histogram
	RequestDuration    *prometheus.HistogramVec
	CacheLookupsTotal  *prometheus.CounterVec
	InvalidFieldsTotal *prometheus.CounterVec
}

// New registers every instrument on a fresh registry, so several servers (or
// tests) can coexist in one process. Process and Go runtime collectors are
// included.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegisterer(reg, reg)
}

// NewWithRegisterer registers instruments on reg and serves them from gatherer.
func NewWithRegisterer(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: gatherer,
		RegistrationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enrol_registrations_total",
			Help: "Registration requests by outcome (saved, invalid, failed)",
		}, []string{"outcome"}),
		StoreDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "enrol_store_insert_duration_seconds",
			Help:    "Duration of registration inserts into the document store",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrol_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		CacheLookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enrol_cache_lookups_total",
			Help: "Registration cache lookups by result (hit, miss)",
		}, []string{"result"}),
		InvalidFieldsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enrol_invalid_fields_total",
			Help: "Fields rejected by validation, by field name",
		}, []string{"field"}),
	}
}

// IncrementRegistrations records one registration request with the given outcome.
func (m *Metrics) IncrementRegistrations(outcome string) {
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

// IncrementInvalidField records a validation failure for field.
func (m *Metrics) IncrementInvalidField(field string) {
	m.InvalidFieldsTotal.WithLabelValues(field).Inc()
}

// ObserveStore records the duration of a store insert.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveStore(start time.Time) {
	m.StoreDuration.Observe(time.Since(start).Seconds())
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
