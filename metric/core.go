package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orionld"

// Metrics contains the broker-level metrics recorded by the serialization core
type Metrics struct {
	Serializations        *prometheus.CounterVec
	SerializationDuration *prometheus.HistogramVec
	EntitiesSerialized    prometheus.Counter
	EntityErrors          *prometheus.CounterVec
	ContextBuilds         *prometheus.CounterVec
	EndpointValidations   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		Serializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "serializer",
				Name:      "responses_total",
				Help:      "Total number of serialized query responses",
			},
			[]string{"mode", "status"},
		),

		SerializationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "serializer",
				Name:      "duration_seconds",
				Help:      "Time spent building a response tree",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),

		EntitiesSerialized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "serializer",
				Name:      "entities_total",
				Help:      "Total number of entities rendered into response trees",
			},
		),

		EntityErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "serializer",
				Name:      "backend_errors_total",
				Help:      "Backend errors translated into error responses, by HTTP status",
			},
			[]string{"status"},
		),

		ContextBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "context",
				Name:      "builds_total",
				Help:      "Total number of @context builds, by source and outcome",
			},
			[]string{"source", "outcome"},
		),

		EndpointValidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "endpoint",
				Name:      "validations_total",
				Help:      "Total number of endpoint descriptor validations",
			},
			[]string{"result"},
		),
	}
}

func (c *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.Serializations,
		c.SerializationDuration,
		c.EntitiesSerialized,
		c.EntityErrors,
		c.ContextBuilds,
		c.EndpointValidations,
	}
}

// RecordSerialization records one serialized response and the time it took
func (c *Metrics) RecordSerialization(mode string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.Serializations.WithLabelValues(mode, strconv.Itoa(status)).Inc()
	c.SerializationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordEntities increments the rendered entity counter
func (c *Metrics) RecordEntities(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.EntitiesSerialized.Add(float64(n))
}

// RecordEntityError records a backend error translated into an error response
func (c *Metrics) RecordEntityError(status int) {
	if c == nil {
		return
	}
	c.EntityErrors.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordContextBuild records the outcome of building a context from a given source
// ("url", "list", "inline", "remote").
func (c *Metrics) RecordContextBuild(source string, ok bool) {
	if c == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	c.ContextBuilds.WithLabelValues(source, outcome).Inc()
}

// RecordEndpointValidation records an endpoint validation result ("ok" or the error kind)
func (c *Metrics) RecordEndpointValidation(result string) {
	if c == nil {
		return
	}
	c.EndpointValidations.WithLabelValues(result).Inc()
}
