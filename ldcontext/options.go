package ldcontext

import (
	"log/slog"

	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

// Option configures a Cache.
type Option func(*cacheOptions)

type cacheOptions struct {
	maxDepth int
	logger   *slog.Logger
	registry *metric.MetricsRegistry
}

// WithMaxDepth bounds nested remote context references. Values <= 0 are ignored.
func WithMaxDepth(n int) Option {
	return func(opts *cacheOptions) {
		if n > 0 {
			opts.maxDepth = n
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *cacheOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetrics exports cache statistics and context build outcomes to registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(opts *cacheOptions) {
		opts.registry = registry
	}
}

func applyOptions(options ...Option) *cacheOptions {
	opts := &cacheOptions{maxDepth: defaultMaxDepth}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	opts.logger = opts.logger.With("component", "ldcontext")
	return opts
}
