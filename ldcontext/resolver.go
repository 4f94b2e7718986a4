package ldcontext

import (
	"strings"

	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// Resolver translates between long IRIs and short terms.
type Resolver struct {
	defaultURL string
}

// NewResolver creates a Resolver. Names under defaultURL are compacted by
// stripping the prefix, without consulting any context. An empty defaultURL
// disables the fast path.
func NewResolver(defaultURL string) *Resolver {
	return &Resolver{defaultURL: defaultURL}
}

// DefaultURL returns the configured default namespace.
func (r *Resolver) DefaultURL() string { return r.defaultURL }

// Compact returns the short name of longName: the default-namespace strip
// first, then the term ctx maps to it, else longName unchanged.
func (r *Resolver) Compact(ctx *Context, longName string) string {
	if r.defaultURL != "" {
		if short, ok := strings.CutPrefix(longName, r.defaultURL); ok {
			return short
		}
	}
	if term, ok := ctx.TermFor(longName); ok {
		return term
	}
	return longName
}

// Expand returns the IRI of shortName: the term's IRI in ctx, the name itself
// when it is a keyword or already contains a colon, else the name under the
// default namespace.
func (r *Resolver) Expand(ctx *Context, shortName string) string {
	if iri, ok := ctx.Lookup(shortName); ok {
		return iri
	}
	if vocabulary.IsKeyword(shortName) || strings.Contains(shortName, ":") || r.defaultURL == "" {
		return shortName
	}
	return r.defaultURL + shortName
}
