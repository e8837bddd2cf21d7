package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// The façade keeps its **own** Prometheus registry so an embedding
// application can mount it wherever it serves metrics without label
// collisions on the default registry.
var (
	registry = prometheus.NewRegistry()

	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docstore_operation_duration_seconds",
			Help:    "Duration of database façade operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)
	opTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docstore_operations_total",
			Help: "Total number of database façade operations",
		},
		[]string{"operation", "status"},
	)
)

func init() {
	registry.MustRegister(opDuration, opTotal)
}

// MetricsRegistry returns the registry holding the façade's collectors.
func MetricsRegistry() *prometheus.Registry {
	return registry
}

// observe starts timing an operation and returns the closer that records
// its outcome. A no-op when metrics are disabled in config.
func (c *Client) observe(operation string) func(error) {
	if !c.metrics {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		dur := time.Since(start).Seconds()
		opDuration.WithLabelValues(operation, status).Observe(dur)
		opTotal.WithLabelValues(operation, status).Inc()
	}
}
