// Package ldcontext resolves JSON-LD @context values into term maps and
// translates names between their long IRI and short term forms.
//
// A Context is an immutable term-to-IRI map together with the @context value
// it was built from. The core context is created once with NewCoreContext;
// user contexts are built from an entity's "@context" attribute by a Builder:
//
//   - a string is a context URL, fetched through an ld.DocumentLoader
//   - an object holds inline term definitions ("term": "iri" or "term": {"@id": "iri"})
//   - an array combines both, later entries overriding earlier ones
//
// Fetched documents contribute their "@context" member, or the whole document
// when it has none. Nested URL references are followed up to a maximum depth
// and cycles are rejected. Compact IRIs whose prefix is a term of the same
// context are expanded. Any failure is reported as errors.ErrContextBuild.
//
// Cache keeps one Context per entity and one per context URL for the life of
// the process:
//
//	core := ldcontext.NewCoreContext(vocabulary.CoreContextURL, vocabulary.CoreTerms())
//	contexts, err := ldcontext.NewCache(core, httppool.NewLoader(pool, 5*time.Second))
//	...
//	ctx, err := contexts.LookupOrBuild(e.ID, e.Attributes)
//
// Concurrent LookupOrBuild calls for the same entity run a single build; the
// first inserted Context is kept and returned to every caller.
//
// Resolver compacts IRIs for output and expands short names, with a fast
// path for names under the configured default URL.
package ldcontext
