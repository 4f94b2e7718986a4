package serializer

import (
	"log/slog"

	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// Option configures a Serializer.
type Option func(*Serializer)

// WithCoreContextURL sets the context referenced for entities without an
// @context attribute: embedded in JSON-LD output, linked in plain JSON.
// Defaults to the URL of the cache's core context.
func WithCoreContextURL(url string) Option {
	return func(s *Serializer) {
		if url != "" {
			s.coreContextURL = url
		}
	}
}

// WithMaxNodes bounds the number of nodes of one response tree.
func WithMaxNodes(n int) Option {
	return func(s *Serializer) {
		s.maxNodes = n
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records serializations into the core broker metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *Serializer) {
		s.metrics = m
	}
}
