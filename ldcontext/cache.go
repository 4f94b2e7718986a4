package ldcontext

import (
	"log/slog"
	"sync/atomic"

	"github.com/piprate/json-gold/ld"
	"golang.org/x/sync/singleflight"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/cache"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// Cache maps entities and context URLs to built Contexts.
//
// Entries are inserted once and never replaced: when two builds for the same
// key race, the first insert wins and later results are discarded. Builds for
// one entity, and fetches of one URL, are collapsed with singleflight.
type Cache struct {
	core    *Context
	builder *Builder

	entities cache.Cache[*Context]
	urls     cache.Cache[*Context]

	entityGroup singleflight.Group
	urlGroup    singleflight.Group

	builds  atomic.Int64
	logger  *slog.Logger
	metrics *metric.Metrics
}

// CacheStats is a snapshot of both cache tables.
type CacheStats struct {
	Entities cache.StatsSummary
	URLs     cache.StatsSummary
	Builds   int64
}

// NewCache creates a Cache. core is returned for entities without @context;
// loader fetches remote context documents.
func NewCache(core *Context, loader ld.DocumentLoader, options ...Option) (*Cache, error) {
	if core == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Cache", "NewCache", "core context is required")
	}
	opts := applyOptions(options...)

	entityOpts := []cache.Option[*Context]{}
	urlOpts := []cache.Option[*Context]{}
	var metrics *metric.Metrics
	if opts.registry != nil {
		entityOpts = append(entityOpts, cache.WithMetrics[*Context](opts.registry, "context_entities"))
		urlOpts = append(urlOpts, cache.WithMetrics[*Context](opts.registry, "context_urls"))
		metrics = opts.registry.CoreMetrics()
	}

	entities, err := cache.NewSimple[*Context](entityOpts...)
	if err != nil {
		return nil, errors.WrapTransient(err, "Cache", "NewCache", "create entity table")
	}
	urls, err := cache.NewSimple[*Context](urlOpts...)
	if err != nil {
		return nil, errors.WrapTransient(err, "Cache", "NewCache", "create URL table")
	}

	c := &Cache{
		core:     core,
		builder:  NewBuilder(loader, opts.maxDepth, opts.logger),
		entities: entities,
		urls:     urls,
		logger:   opts.logger,
		metrics:  metrics,
	}
	c.builder.remote = c.remoteContext
	return c, nil
}

// Core returns the core context.
func (c *Cache) Core() *Context { return c.core }

// Lookup returns the context cached for entityID.
func (c *Cache) Lookup(entityID string) (*Context, bool) {
	return c.entities.Get(entityID)
}

// LookupURL returns the context cached for a context URL.
func (c *Cache) LookupURL(url string) (*Context, bool) {
	return c.urls.Get(url)
}

// LookupOrBuild returns the context of an entity. Entities without an
// @context attribute use the core context, which is not cached per entity.
// Otherwise the context is built from the attribute value and inserted under
// entityID; nothing is cached when the build fails.
func (c *Cache) LookupOrBuild(entityID string, attrs []entity.Attribute) (*Context, error) {
	if ctx, ok := c.entities.Get(entityID); ok {
		return ctx, nil
	}

	var ctxAttr *entity.Attribute
	for i := range attrs {
		if attrs[i].Name == vocabulary.ContextMember {
			ctxAttr = &attrs[i]
			break
		}
	}
	if ctxAttr == nil {
		return c.core, nil
	}

	v, err, _ := c.entityGroup.Do(entityID, func() (any, error) {
		if ctx, ok := c.entities.Get(entityID); ok {
			return ctx, nil
		}

		c.builds.Add(1)
		ctx, err := c.builder.Build(entityID, ctxAttr.Value)
		c.metrics.RecordContextBuild(sourceLabel(ctxAttr.Value), err == nil)
		if err != nil {
			c.logger.Warn("Context build failed", "entity", entityID, "error", err)
			return nil, err
		}

		return c.Insert(entityID, ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Context), nil
}

// Insert stores ctx under entityID unless an entry exists, and returns the
// retained context.
func (c *Cache) Insert(entityID string, ctx *Context) (*Context, error) {
	winner, inserted, err := c.entities.GetOrSet(entityID, ctx)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Cache", "Insert", "insert context for "+entityID)
	}
	if inserted {
		c.logger.Debug("Context inserted", "entity", entityID, "identity", ctx.Identity(), "terms", ctx.Len())
	} else {
		c.logger.Debug("Redundant context discarded", "entity", entityID, "identity", winner.Identity())
	}
	return winner, nil
}

// remoteContext resolves a context URL through the URL table. Only the
// document fetch is collapsed, so that nested references are resolved by the
// caller's goroutine and mutual references cannot wait on each other.
func (c *Cache) remoteContext(url string, chain []string) (*Context, error) {
	if ctx, ok := c.urls.Get(url); ok {
		return ctx, nil
	}
	if err := c.builder.checkChain(url, chain); err != nil {
		return nil, err
	}

	v, err, shared := c.urlGroup.Do(url, func() (any, error) {
		c.logger.Debug("Fetching remote context", "url", url)
		return c.builder.load(url)
	})
	if err != nil {
		c.metrics.RecordContextBuild("remote", false)
		return nil, err
	}
	if shared {
		if ctx, ok := c.urls.Get(url); ok {
			return ctx, nil
		}
	}

	next := append(append(make([]string, 0, len(chain)+1), chain...), url)
	ctx, err := c.builder.fromDocument(url, v.(*entity.CompoundValue), next)
	c.metrics.RecordContextBuild("remote", err == nil)
	if err != nil {
		return nil, err
	}

	winner, _, err := c.urls.GetOrSet(url, ctx)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Cache", "remoteContext", "insert context for "+url)
	}
	return winner, nil
}

// Size returns the number of entity entries.
func (c *Cache) Size() int { return c.entities.Size() }

// Builds returns how many entity context builds ran.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entities: c.entities.Stats().Summary(),
		URLs:     c.urls.Stats().Summary(),
		Builds:   c.builds.Load(),
	}
}

// Close releases both tables.
func (c *Cache) Close() error {
	if err := c.entities.Close(); err != nil {
		return err
	}
	return c.urls.Close()
}

func sourceLabel(v entity.Value) string {
	switch {
	case v.Type == entity.ValueString:
		return SourceURL.String()
	case v.IsCompound() && v.Compound.Kind == entity.CompoundArray:
		return SourceURLList.String()
	default:
		return SourceInline.String()
	}
}
