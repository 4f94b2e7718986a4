package ldcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

func TestResolver_Compact(t *testing.T) {
	ctx := newContext("id", OriginUser, SourceInline, []termDef{
		{"temp", "http://ex/temp"},
		{"speedy", vocabulary.DefaultURL + "speed"},
	})
	r := NewResolver(vocabulary.DefaultURL)

	tests := []struct {
		name string
		ctx  *Context
		in   string
		want string
	}{
		{"context term", ctx, "http://ex/temp", "temp"},
		{"default prefix wins over term", ctx, vocabulary.DefaultURL + "speed", "speed"},
		{"unknown IRI unchanged", ctx, "http://ex/unknown", "http://ex/unknown"},
		{"nil context", nil, "http://ex/temp", "http://ex/temp"},
		{"default prefix alone strips to empty", ctx, vocabulary.DefaultURL, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Compact(tt.ctx, tt.in))
		})
	}
}

func TestResolver_CompactBarePrefix(t *testing.T) {
	r := NewResolver("http://d/")
	assert.Equal(t, "", r.Compact(nil, "http://d/"))
	assert.Equal(t, "x", r.Compact(nil, "http://d/x"))
	assert.Equal(t, "http://d", r.Compact(nil, "http://d"))
}

func TestResolver_CompactWithoutDefaultURL(t *testing.T) {
	ctx := newContext("id", OriginUser, SourceInline, []termDef{{"speedy", vocabulary.DefaultURL + "speed"}})
	r := NewResolver("")
	assert.Equal(t, "speedy", r.Compact(ctx, vocabulary.DefaultURL+"speed"))
}

func TestResolver_RoundTrip(t *testing.T) {
	defs := []termDef{
		{"temp", "http://ex/temp"},
		{"T", "http://ex/Type"},
		{"owner", "https://example.org/ns/owner"},
	}
	ctx := newContext("id", OriginUser, SourceInline, defs)
	r := NewResolver(vocabulary.DefaultURL)

	for _, d := range defs {
		assert.Equal(t, d.term, r.Compact(ctx, d.iri))
		assert.Equal(t, d.iri, r.Expand(ctx, d.term))
	}
}

func TestResolver_Expand(t *testing.T) {
	ctx := newContext("id", OriginUser, SourceInline, []termDef{{"temp", "http://ex/temp"}})
	r := NewResolver(vocabulary.DefaultURL)

	assert.Equal(t, "http://ex/temp", r.Expand(ctx, "temp"))
	assert.Equal(t, vocabulary.DefaultURL+"speed", r.Expand(ctx, "speed"))
	assert.Equal(t, "urn:ngsi-ld:x", r.Expand(ctx, "urn:ngsi-ld:x"))
	assert.Equal(t, "@id", r.Expand(ctx, "@id"))
	assert.Equal(t, "speed", NewResolver("").Expand(nil, "speed"))
}
