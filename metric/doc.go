// Package metric provides Prometheus-based metrics collection and an HTTP
// server exposing them.
//
// The registry owns a private prometheus.Registry with the core broker
// metrics (Metrics) pre-registered alongside the Go runtime and process
// collectors. Components register additional collectors through the
// MetricsRegistrar interface, keyed by "component.metric"; a duplicate key or
// a Prometheus name conflict is reported as an invalid error.
//
// # Core Metrics
//
//   - orionld_serializer_responses_total{mode,status}
//   - orionld_serializer_duration_seconds{mode}
//   - orionld_serializer_entities_total
//   - orionld_serializer_backend_errors_total{status}
//   - orionld_context_builds_total{source,outcome}
//   - orionld_endpoint_validations_total{result}
//
// All Record* methods are safe on a nil *Metrics, so callers that run without
// a registry do not need to guard each call.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        slog.Error("metrics server error", "error", err)
//	    }
//	}()
//	defer server.Stop()
//
//	registry.CoreMetrics().RecordSerialization("json", 200, elapsed)
package metric
