package ldcontext

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/piprate/json-gold/ld"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

const defaultMaxDepth = 8

// remoteFunc resolves a context URL. chain holds the URLs being resolved
// above this one.
type remoteFunc func(url string, chain []string) (*Context, error)

// Builder turns @context values into Contexts. Remote documents are fetched
// through an ld.DocumentLoader.
type Builder struct {
	loader   ld.DocumentLoader
	maxDepth int
	logger   *slog.Logger
	remote   remoteFunc
}

// NewBuilder creates a Builder that resolves every remote URL through loader,
// without caching. maxDepth bounds nested remote references (0 selects the default).
func NewBuilder(loader ld.DocumentLoader, maxDepth int, logger *slog.Logger) *Builder {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{loader: loader, maxDepth: maxDepth, logger: logger}
	b.remote = b.fetchRemote
	return b
}

// SynthesizedIdentity returns the identity given to an inline context owned by entityID.
func SynthesizedIdentity(entityID string) string {
	return "urn:ngsi-ld:context:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(entityID)).String()
}

// Build creates the Context described by the @context value v of entityID.
// A string is a context URL, an object holds inline term definitions and an
// array mixes both, later entries overriding earlier ones.
func (b *Builder) Build(entityID string, v entity.Value) (*Context, error) {
	switch {
	case v.Type == entity.ValueString:
		return b.remote(v.Str, nil)

	case v.IsCompound() && v.Compound.Kind == entity.CompoundObject:
		var defs []termDef
		b.inlineDefs(v.Compound, &defs)
		c := newContext(SynthesizedIdentity(entityID), OriginUser, SourceInline, defs)
		c.inline = v.Compound
		return c, nil

	case v.IsCompound() && v.Compound.Kind == entity.CompoundArray:
		var defs []termDef
		source := SourceURLList
		var urls []string
		for i, item := range v.Compound.Children {
			switch item.Kind {
			case entity.CompoundString:
				remote, err := b.remote(item.Str, nil)
				if err != nil {
					return nil, err
				}
				defs = append(defs, remote.defs...)
				urls = append(urls, item.Str)
			case entity.CompoundObject:
				source = SourceInline
				b.inlineDefs(item, &defs)
			default:
				return nil, buildError("Build", fmt.Sprintf("entry %d of @context of %s is a %s", i, entityID, kindName(item.Kind)))
			}
		}
		c := newContext(SynthesizedIdentity(entityID), OriginUser, source, defs)
		c.urls = urls
		c.inline = v.Compound
		return c, nil

	default:
		return nil, buildError("Build", fmt.Sprintf("@context of %s must be a string, object or array, got %s", entityID, v.Type))
	}
}

// fetchRemote loads url and interprets the document. It does not cache.
func (b *Builder) fetchRemote(url string, chain []string) (*Context, error) {
	if err := b.checkChain(url, chain); err != nil {
		return nil, err
	}
	doc, err := b.load(url)
	if err != nil {
		return nil, err
	}
	return b.fromDocument(url, doc, append(slices.Clone(chain), url))
}

func (b *Builder) checkChain(url string, chain []string) error {
	if url == "" {
		return buildError("remote", "empty context URL")
	}
	if slices.Contains(chain, url) {
		return buildError("remote", fmt.Sprintf("context cycle: %s -> %s", strings.Join(chain, " -> "), url))
	}
	if len(chain) >= b.maxDepth {
		return buildError("remote", fmt.Sprintf("context nesting deeper than %d at %s", b.maxDepth, url))
	}
	return nil
}

func (b *Builder) load(url string) (*entity.CompoundValue, error) {
	if b.loader == nil {
		return nil, buildError("remote", "no document loader for "+url)
	}
	rd, err := b.loader.LoadDocument(url)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: fetch %s: %w", errors.ErrContextBuild, url, err),
			"Builder", "remote", "load context document")
	}
	return documentValue(rd.Document), nil
}

// documentValue converts a loaded document. Ordered forms keep declaration
// order; plain decoded maps have none and are read in name order.
func documentValue(doc any) *entity.CompoundValue {
	switch d := doc.(type) {
	case *tree.Node:
		return entity.CompoundFromTree(d)
	case *entity.CompoundValue:
		return d
	default:
		return compoundFromJSON(d)
	}
}

// fromDocument interprets a fetched document: its @context member when it
// has one, else the document itself as a term map.
func (b *Builder) fromDocument(url string, doc *entity.CompoundValue, chain []string) (*Context, error) {
	if doc == nil || doc.Kind != entity.CompoundObject {
		return nil, buildError("remote", fmt.Sprintf("context document %s is not a JSON object", url))
	}

	body := doc
	for _, m := range doc.Children {
		if m.Name == vocabulary.ContextMember {
			body = m
			break
		}
	}

	var defs []termDef
	if err := b.interpret(body, chain, &defs); err != nil {
		return nil, err
	}

	c := newContext(url, OriginUser, SourceURL, defs)
	c.url = url
	return c, nil
}

// interpret appends the definitions of a @context value found in a remote document.
func (b *Builder) interpret(v *entity.CompoundValue, chain []string, defs *[]termDef) error {
	switch v.Kind {
	case entity.CompoundString:
		nested, err := b.remote(v.Str, chain)
		if err != nil {
			return err
		}
		*defs = append(*defs, nested.defs...)
	case entity.CompoundObject:
		b.inlineDefs(v, defs)
	case entity.CompoundArray:
		for _, item := range v.Children {
			if err := b.interpret(item, chain, defs); err != nil {
				return err
			}
		}
	case entity.CompoundNull:
	default:
		return buildError("remote", "unsupported @context entry of kind "+kindName(v.Kind))
	}
	return nil
}

// inlineDefs reads term definitions: "term": "iri" or "term": {"@id": "iri"}.
// Keywords and definitions without an IRI are skipped.
func (b *Builder) inlineDefs(obj *entity.CompoundValue, defs *[]termDef) {
	for _, m := range obj.Children {
		if vocabulary.IsKeyword(m.Name) {
			continue
		}
		switch m.Kind {
		case entity.CompoundString:
			*defs = append(*defs, termDef{term: m.Name, iri: m.Str})
		case entity.CompoundObject:
			for _, field := range m.Children {
				if field.Name == "@id" && field.Kind == entity.CompoundString {
					*defs = append(*defs, termDef{term: m.Name, iri: field.Str})
					break
				}
			}
		default:
			b.logger.Debug("Skipping term definition", "term", m.Name, "kind", kindName(m.Kind))
		}
	}
}

func buildError(method, msg string) error {
	return errors.WrapInvalid(errors.ErrContextBuild, "Builder", method, msg)
}

func splitCompact(iri string) (string, string, bool) {
	return vocabulary.SplitCompactIRI(iri)
}

// compoundFromJSON converts a decoded JSON document. Object members are
// sorted by name since decoded maps carry no order.
func compoundFromJSON(v any) *entity.CompoundValue {
	switch t := v.(type) {
	case map[string]any:
		names := make([]string, 0, len(t))
		for k := range t {
			names = append(names, k)
		}
		sort.Strings(names)
		members := make([]entity.Member, 0, len(names))
		for _, k := range names {
			members = append(members, entity.Member{Name: k, Value: compoundFromJSON(t[k])})
		}
		return entity.Object(members...)
	case []any:
		items := make([]*entity.CompoundValue, 0, len(t))
		for _, item := range t {
			items = append(items, compoundFromJSON(item))
		}
		return entity.Array(items...)
	case string:
		return entity.String(t)
	case float64:
		return entity.Number(t)
	case bool:
		return entity.Bool(t)
	default:
		return entity.Null()
	}
}

func kindName(k entity.CompoundKind) string {
	switch k {
	case entity.CompoundObject:
		return "object"
	case entity.CompoundArray:
		return "array"
	case entity.CompoundString:
		return "string"
	case entity.CompoundNumber:
		return "number"
	case entity.CompoundBoolean:
		return "boolean"
	default:
		return "null"
	}
}
