// Package cache provides a generic, thread-safe key/value cache with built-in
// statistics and optional Prometheus metrics.
//
// The cache never evicts on its own. Entries leave only through Delete or
// Clear, which makes it a fit for registries whose entries are immutable once
// published, such as resolved JSON-LD contexts.
//
// GetOrSet implements first-writer-wins insertion: when several goroutines race
// to populate the same key, exactly one value is stored and every caller gets
// that value back.
//
//	c, err := cache.NewSimple[*ldcontext.Context](
//	    cache.WithMetrics[*ldcontext.Context](registry, "context_cache"),
//	)
//	stored, inserted, err := c.GetOrSet(url, ctx)
//
// Statistics are always collected. WithMetrics additionally exports them as
// orionld_cache_* series labelled with the component prefix.
package cache
