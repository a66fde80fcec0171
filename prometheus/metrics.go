package prometheus

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Entity CRUD metrics
	EntityOperationsCounter *prometheus.CounterVec

	// Posting workflow metrics
	PostingsCounter *prometheus.CounterVec
	PostingDuration *prometheus.HistogramVec

	// Inventory metrics
	ProductInventoryGauge *prometheus.GaugeVec

	// Insight generator metrics
	InsightRequestsCounter *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg under the given name prefix
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return strings.TrimSuffix(prefix, "_") + "_" + s
	}

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("http_requests_total"),
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name("http_request_duration_seconds"),
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthAttemptsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("auth_attempts_total"),
				Help: "Total number of authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name("db_operation_duration_seconds"),
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),
		EntityOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("entity_operations_total"),
				Help: "Total number of entity operations",
			},
			[]string{"entity", "operation"},
		),
		PostingsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("postings_total"),
				Help: "Total number of invoice and payment postings by outcome",
			},
			[]string{"kind", "outcome"},
		),
		PostingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name("posting_duration_seconds"),
				Help:    "Duration of posting units of work in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ProductInventoryGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: name("product_inventory"),
				Help: "Current inventory level for products",
			},
			[]string{"product_id", "product_name"},
		),
		InsightRequestsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("insight_requests_total"),
				Help: "Total number of AI insight requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordAuthAttempt counts a bearer token check
func (m *Metrics) RecordAuthAttempt(outcome string) {
	if m == nil {
		return
	}
	m.AuthAttemptsCounter.WithLabelValues(outcome).Inc()
}

// RecordEntityOperation increments the counter for entity operations
func (m *Metrics) RecordEntityOperation(entity, operation string) {
	if m == nil {
		return
	}
	m.EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// TrackPosting returns a function that records the outcome and duration of a posting
func (m *Metrics) TrackPosting(kind string) func(startTime time.Time, err error) {
	return func(startTime time.Time, err error) {
		if m == nil {
			return
		}
		outcome := "committed"
		if err != nil {
			outcome = "aborted"
		}
		m.PostingsCounter.WithLabelValues(kind, outcome).Inc()
		m.PostingDuration.WithLabelValues(kind).Observe(time.Since(startTime).Seconds())
	}
}

// UpdateProductInventory updates the gauge for product inventory
func (m *Metrics) UpdateProductInventory(productID string, productName string, count float64) {
	if m == nil {
		return
	}
	m.ProductInventoryGauge.WithLabelValues(productID, productName).Set(count)
}

// RecordInsightRequest counts an insight generation attempt
func (m *Metrics) RecordInsightRequest(outcome string) {
	if m == nil {
		return
	}
	m.InsightRequestsCounter.WithLabelValues(outcome).Inc()
}
