package ldcontext

import (
	"sort"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
)

// Origin tells whether a Context is the built-in core context or came from user data.
type Origin int

const (
	OriginCore Origin = iota
	OriginUser
)

// String returns the origin name.
func (o Origin) String() string {
	if o == OriginCore {
		return "core"
	}
	return "user"
}

// SourceKind is the shape of the @context value a Context was built from.
type SourceKind int

const (
	// SourceURL is a single context URL.
	SourceURL SourceKind = iota
	// SourceURLList is an array of context URLs.
	SourceURLList
	// SourceInline is an inline object, or an array mixing URLs and objects.
	SourceInline
)

// String returns the source kind name used in logs and metrics.
func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "url"
	case SourceURLList:
		return "list"
	default:
		return "inline"
	}
}

type termDef struct {
	term string
	iri  string
}

// Context maps short terms to long IRIs. It is immutable once built and safe
// to share between goroutines.
type Context struct {
	identity string
	origin   Origin
	source   SourceKind

	url    string
	urls   []string
	inline *entity.CompoundValue

	defs    []termDef // declaration order, after compact IRI expansion
	terms   map[string]string
	reverse map[string]string
}

// newContext finalizes defs: the last definition of a term wins, and the
// reverse map keeps the first term declared for an IRI.
func newContext(identity string, origin Origin, source SourceKind, defs []termDef) *Context {
	c := &Context{
		identity: identity,
		origin:   origin,
		source:   source,
		terms:    make(map[string]string, len(defs)),
		reverse:  make(map[string]string, len(defs)),
	}

	for _, d := range defs {
		c.terms[d.term] = d.iri
	}
	for i, d := range defs {
		if prefix, suffix, ok := splitCompact(d.iri); ok {
			if base, found := c.terms[prefix]; found && prefix != d.term {
				defs[i].iri = base + suffix
			}
		}
	}
	for _, d := range defs {
		c.terms[d.term] = d.iri
	}
	for _, d := range defs {
		if c.terms[d.term] != d.iri {
			continue
		}
		if _, taken := c.reverse[d.iri]; !taken {
			c.reverse[d.iri] = d.term
		}
	}

	c.defs = defs
	return c
}

// NewCoreContext creates the process-wide core context. Terms are declared in
// sorted order so that reverse lookups are deterministic.
func NewCoreContext(url string, terms map[string]string) *Context {
	names := make([]string, 0, len(terms))
	for t := range terms {
		names = append(names, t)
	}
	sort.Strings(names)

	defs := make([]termDef, 0, len(names))
	for _, t := range names {
		defs = append(defs, termDef{term: t, iri: terms[t]})
	}

	c := newContext(url, OriginCore, SourceURL, defs)
	c.url = url
	return c
}

// Identity is the cache identity: the context URL, or a key synthesized from
// the owning entity for inline contexts.
func (c *Context) Identity() string { return c.identity }

// Origin returns where the context came from.
func (c *Context) Origin() Origin { return c.origin }

// Source returns the shape of the value the context was built from.
func (c *Context) Source() SourceKind { return c.source }

// URL returns the context URL of a SourceURL context.
func (c *Context) URL() string { return c.url }

// URLs returns the URLs of a SourceURLList context.
func (c *Context) URLs() []string {
	out := make([]string, len(c.urls))
	copy(out, c.urls)
	return out
}

// Inline returns the retained @context value of an inline context.
func (c *Context) Inline() *entity.CompoundValue { return c.inline }

// Lookup returns the IRI of term.
func (c *Context) Lookup(term string) (string, bool) {
	if c == nil {
		return "", false
	}
	iri, ok := c.terms[term]
	return iri, ok
}

// TermFor returns the term mapped to iri. When several terms map to the same
// IRI the first one declared wins.
func (c *Context) TermFor(iri string) (string, bool) {
	if c == nil {
		return "", false
	}
	term, ok := c.reverse[iri]
	return term, ok
}

// Terms returns a copy of the term map.
func (c *Context) Terms() map[string]string {
	out := make(map[string]string, len(c.terms))
	for k, v := range c.terms {
		out[k] = v
	}
	return out
}

// Len returns the number of terms.
func (c *Context) Len() int { return len(c.terms) }
