package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25, // fast responses
		50, 100, 250, // normal responses
		500, 1000, 2500, // slow responses
		5000, 10000, 30000, // very slow/timeout
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgershield_requests_total",
			Help: "Total number of HTTP exchanges processed",
		},
		[]string{"method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledgershield_latency_ms",
			Help:    "Exchange latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	InvalidPayloadTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgershield_invalid_payloads_total",
			Help: "Captured bodies that could not be parsed as JSON",
		},
		[]string{"direction"}, // "request" or "response"
	)

	RedactedFieldsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgershield_redacted_fields_total",
			Help: "Values replaced by the mask in captured bodies",
		},
		[]string{"direction"},
	)
)

type MetricsConfig struct {
	EnableLatency bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency: true,
	}
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
