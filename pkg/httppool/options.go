package httppool

import (
	"crypto/tls"
	"log/slog"
	"net/http"

	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

const (
	defaultPoolSize     = 8
	defaultMaxBodyBytes = 1 << 20
	defaultMaxRedirects = 10
)

// TransportFactory creates the round tripper backing one client handle.
type TransportFactory func(tlsConfig *tls.Config) http.RoundTripper

// Option configures a Pool using the functional options pattern.
type Option func(*poolOptions)

type poolOptions struct {
	poolSize         int
	maxBodyBytes     int
	maxRedirects     int
	tlsConfig        *tls.Config
	transportFactory TransportFactory
	metricsReg       *metric.MetricsRegistry
	metricsPrefix    string
	logger           *slog.Logger
}

// WithPoolSize bounds the number of handles created per host. Values <= 0 are ignored.
func WithPoolSize(n int) Option {
	return func(opts *poolOptions) {
		if n > 0 {
			opts.poolSize = n
		}
	}
}

// WithMaxBodyBytes bounds the size of a fetched body. Zero means unbounded.
func WithMaxBodyBytes(n int) Option {
	return func(opts *poolOptions) {
		if n >= 0 {
			opts.maxBodyBytes = n
		}
	}
}

// WithMaxRedirects bounds the number of redirects followed per request.
func WithMaxRedirects(n int) Option {
	return func(opts *poolOptions) {
		if n >= 0 {
			opts.maxRedirects = n
		}
	}
}

// WithTLSConfig sets the client TLS configuration of every handle.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(opts *poolOptions) {
		opts.tlsConfig = cfg
	}
}

// WithTransportFactory replaces the default transport of new handles.
func WithTransportFactory(f TransportFactory) Option {
	return func(opts *poolOptions) {
		if f != nil {
			opts.transportFactory = f
		}
	}
}

// WithMetrics enables Prometheus metrics export for fetches.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics(registry *metric.MetricsRegistry, prefix string) Option {
	return func(opts *poolOptions) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *poolOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

func applyOptions(options ...Option) *poolOptions {
	opts := &poolOptions{
		poolSize:         defaultPoolSize,
		maxBodyBytes:     defaultMaxBodyBytes,
		maxRedirects:     defaultMaxRedirects,
		transportFactory: defaultTransport,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	opts.logger = opts.logger.With("component", "httppool")

	return opts
}

// defaultTransport keeps at most one idle connection, so a handle behaves
// like a single reusable connection to its host.
func defaultTransport(tlsConfig *tls.Config) http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 1
	t.MaxIdleConnsPerHost = 1
	if tlsConfig != nil {
		t.TLSClientConfig = tlsConfig.Clone()
	}
	return t
}
