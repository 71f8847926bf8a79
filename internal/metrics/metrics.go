package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AssetTransactionsTotal counts committed lifecycle transitions by type (CheckOut, CheckIn).
	AssetTransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_transactions_total",
			Help: "Total number of recorded asset check-out/check-in transactions",
		},
		[]string{"type"},
	)

	// AuditEntriesTotal counts audit log entries written.
	AuditEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of audit log entries written",
		},
	)

	// AssetsOverdue is the number of assets checked out longer than the configured threshold.
	AssetsOverdue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "assets_overdue",
			Help: "Number of assets checked out longer than the overdue threshold",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AssetTransactionsTotal, AuditEntriesTotal, AssetsOverdue)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /assets/123 -> /assets/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAssetTransaction increments the lifecycle transaction counter for the given type.
func IncAssetTransaction(typ string) {
	AssetTransactionsTotal.WithLabelValues(typ).Inc()
}

// IncAuditEntries increments the audit entry counter.
func IncAuditEntries() {
	AuditEntriesTotal.Inc()
}

// SetAssetsOverdue sets the overdue-assets gauge (called by the scheduler).
func SetAssetsOverdue(n int) {
	AssetsOverdue.Set(float64(n))
}
