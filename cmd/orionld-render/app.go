package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/MohamedSadiq102/context.Orion-LD/config"
	"github.com/MohamedSadiq102/context.Orion-LD/endpoint"
	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/health"
	"github.com/MohamedSadiq102/context.Orion-LD/ldcontext"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/httppool"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/tlsutil"
	"github.com/MohamedSadiq102/context.Orion-LD/serializer"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// app holds the wired serialization core
type app struct {
	pool       *httppool.Pool
	cache      *ldcontext.Cache
	serializer *serializer.Serializer
	validator  *endpoint.Validator
	monitor    *health.Monitor
	logger     *slog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, registry *metric.MetricsRegistry, logger *slog.Logger) (*app, error) {
	poolOpts := []httppool.Option{
		httppool.WithPoolSize(cfg.Fetch.PoolSize),
		httppool.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
		httppool.WithMaxRedirects(cfg.Fetch.MaxRedirects),
		httppool.WithMetrics(registry, "httppool"),
		httppool.WithLogger(logger),
	}
	if !cfg.Fetch.TLS.IsZero() {
		tlsConfig, err := tlsutil.LoadClientTLSConfig(cfg.Fetch.TLS)
		if err != nil {
			return nil, fmt.Errorf("client TLS: %w", err)
		}
		poolOpts = append(poolOpts, httppool.WithTLSConfig(tlsConfig))
	}

	pool, err := httppool.New(poolOpts...)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	core := ldcontext.NewCoreContext(cfg.Broker.CoreContextURL, vocabulary.CoreTerms())
	loader := httppool.NewLoader(pool, cfg.Fetch.Timeout).WithContext(ctx)

	cache, err := ldcontext.NewCache(core, loader,
		ldcontext.WithMaxDepth(cfg.Context.MaxDepth),
		ldcontext.WithLogger(logger),
		ldcontext.WithMetrics(registry),
	)
	if err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("create context cache: %w", err)
	}

	ser, err := serializer.New(cache, ldcontext.NewResolver(cfg.Broker.DefaultURL),
		serializer.WithCoreContextURL(cfg.Broker.CoreContextURL),
		serializer.WithLogger(logger),
		serializer.WithMetrics(registry.CoreMetrics()),
	)
	if err != nil {
		_ = cache.Close()
		_ = pool.Close()
		return nil, fmt.Errorf("create serializer: %w", err)
	}

	monitor := health.NewMonitor()
	monitor.UpdateHealthy("serializer", "ready")

	return &app{
		pool:       pool,
		cache:      cache,
		serializer: ser,
		validator:  endpoint.NewValidator(registry.CoreMetrics()),
		monitor:    monitor,
		logger:     logger,
	}, nil
}

func renderOptions(cliCfg *CLIConfig) serializer.Options {
	filter := serializer.MatchAllAttributes()
	if cliCfg.Attrs != "" {
		filter = serializer.ParseAttributeFilter(cliCfg.Attrs)
	}
	return serializer.Options{Filter: filter, OneHit: cliCfg.OneHit, JSONLD: cliCfg.JSONLD}
}

// render decodes a backend batch from in and writes a header block and the
// serialized body to out. A failed serialization still writes its problem
// details before returning the error.
func (a *app) render(in io.Reader, opts serializer.Options, out io.Writer) error {
	batch, err := entity.DecodeBatch(in)
	if err != nil {
		return fmt.Errorf("decode batch: %w", err)
	}

	links := &serializer.LinkHeaders{}
	resp, serr := a.serializer.Serialize(batch, opts, links)
	a.monitor.Record("render", serr, int64(len(batch.Entities)))
	if serr != nil {
		resp = serializer.ErrorResponseFor(serr)
	}
	if links.Pending() > 0 {
		a.logger.Warn("Inline @context cannot be linked until it is published", "entities", links.Pending())
	}

	body, err := json.Marshal(resp.Tree)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Status: %d\n", resp.StatusCode)
	_, _ = fmt.Fprintf(out, "Content-Type: %s\n", resp.MimeType)
	if serr == nil {
		for _, link := range links.Values() {
			_, _ = fmt.Fprintf(out, "Link: %s\n", link)
		}
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", body)

	stats := a.cache.Stats()
	a.logger.Debug("Rendered batch",
		"entities", len(batch.Entities),
		"status", resp.StatusCode,
		"context_builds", stats.Builds,
		"cached_contexts", stats.Entities.CurrentSize)

	return serr
}

// validateEndpoint prints the parsed endpoint or returns the validation error
func (a *app) validateEndpoint(data []byte, out io.Writer) error {
	info, err := a.validator.ParseJSON(data)
	a.monitor.Record("endpoint", err, 1)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "uri: %s\naccept: %s\n", info.URL, info.MimeType)
	return nil
}

// Close releases the cache and the pool's connections
func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("Close context cache", "error", err)
	}
	if err := a.pool.Close(); err != nil {
		a.logger.Warn("Close pool", "error", err)
	}
}
