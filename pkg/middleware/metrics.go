// Package middleware provides observability hooks for the qstate
// engine: Prometheus metrics and OpenTelemetry tracing over the commit
// and broadcast paths.
package middleware

import (
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chrisneven/qstate/pkg/qstate"
)

// MetricsConfig configures the Prometheus hook.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "qstate").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for commit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hook.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the commit-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "qstate",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metricsHook implements qstate.Hook over Prometheus collectors.
type metricsHook struct {
	commitsTotal   *prometheus.CounterVec
	commitDuration prometheus.Histogram
	broadcasts     prometheus.Counter
	subscribers    prometheus.Gauge
}

// Metrics creates a qstate.Hook that exports commit and broadcast
// metrics.
//
// Metrics collected:
//   - qstate_commits_total: Counter of URL commits by result
//   - qstate_commit_duration_seconds: Histogram of commit duration
//   - qstate_broadcasts_total: Counter of synthetic broadcasts
//   - qstate_broadcast_subscribers: Gauge of subscribers reached by
//     the most recent broadcast
//
// Example:
//
//	eng, err := qstate.New(hist,
//	    qstate.WithHooks(middleware.Metrics(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	)
func Metrics(opts ...MetricsOption) qstate.Hook {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	return &metricsHook{
		commitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of navigation-entry replacements by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commit_duration_seconds",
			Help:        "Navigation-entry replacement duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		broadcasts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "broadcasts_total",
			Help:        "Total number of synthetic change broadcasts",
			ConstLabels: config.ConstLabels,
		}),

		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "broadcast_subscribers",
			Help:        "Subscribers reached by the most recent broadcast",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *metricsHook) CommitObserved(_ *url.URL, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.commitsTotal.WithLabelValues(result).Inc()
	m.commitDuration.Observe(elapsed.Seconds())
}

func (m *metricsHook) BroadcastObserved(subscribers int) {
	m.broadcasts.Inc()
	m.subscribers.Set(float64(subscribers))
}
