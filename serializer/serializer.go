package serializer

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/ldcontext"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

// Options selects what one serialization produces.
type Options struct {
	// Filter selects attributes by stored name.
	Filter AttributeFilter
	// OneHit renders a single entity as the whole response instead of an array.
	OneHit bool
	// JSONLD embeds @context in the body instead of Link headers.
	JSONLD bool
}

// Response is a serialized query result.
type Response struct {
	Tree       *tree.Node
	StatusCode int
	MimeType   string
}

// Serializer renders backend entities as NGSI-LD JSON or JSON-LD trees.
// It holds no per-request state and may be used concurrently.
type Serializer struct {
	cache          *ldcontext.Cache
	resolver       *ldcontext.Resolver
	coreContextURL string
	maxNodes       int
	logger         *slog.Logger
	metrics        *metric.Metrics
}

// New creates a Serializer that takes entity contexts from cache.
func New(cache *ldcontext.Cache, resolver *ldcontext.Resolver, options ...Option) (*Serializer, error) {
	if cache == nil || resolver == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Serializer", "New", "context cache and resolver are required")
	}

	s := &Serializer{
		cache:          cache,
		resolver:       resolver,
		coreContextURL: cache.Core().URL(),
		logger:         slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.With("component", "serializer")
	return s, nil
}

// Serialize renders a backend batch.
//
// A batch-level error becomes a problem details response. With OneHit the
// single entity is the response object, zero entities are "not found" and
// more than one is errors.ErrTooManyResults; otherwise the response is an
// array, empty when nothing matched. Entity-level errors become problem
// details elements, or the whole response under OneHit.
func (s *Serializer) Serialize(batch *entity.Batch, opts Options, hw HeaderWriter) (*Response, error) {
	start := time.Now()
	mode := "json"
	mime := vocabulary.MimeTypeJSON
	if opts.JSONLD {
		mode, mime = "jsonld", vocabulary.MimeTypeJSONLD
	}
	if hw == nil {
		hw = discardHeaders{}
	}

	resp, err := s.serialize(batch, opts, hw, mime)
	if err != nil {
		status, _ := problemFor(err)
		s.metrics.RecordSerialization(mode, status, time.Since(start))
		return nil, err
	}
	s.metrics.RecordSerialization(mode, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (s *Serializer) serialize(batch *entity.Batch, opts Options, hw HeaderWriter, mime string) (*Response, error) {
	b := tree.NewBuilder(s.maxNodes)
	hits := len(batch.Entities)

	if !opts.OneHit && hits == 0 {
		return &Response{Tree: b.Array(""), StatusCode: http.StatusOK, MimeType: mime}, nil
	}

	if !batch.Error.OK() {
		return s.backendError(b, "", batch.Error, opts.OneHit), nil
	}

	if hits == 0 {
		return &Response{
			Tree:       problemNode(b, http.StatusNotFound, "Entity Not Found", "no entity matched the query"),
			StatusCode: http.StatusNotFound,
			MimeType:   vocabulary.MimeTypeJSON,
		}, nil
	}
	if hits > 1 && opts.OneHit {
		return nil, errors.WrapFatal(errors.ErrTooManyResults, "Serializer", "Serialize",
			fmt.Sprintf("%d entities for a single-entity request", hits))
	}

	var root *tree.Node
	if !opts.OneHit {
		root = b.Array("")
	}

	rendered := 0
	for i := range batch.Entities {
		e := &batch.Entities[i]

		if !e.Error.OK() {
			if opts.OneHit {
				return s.backendError(b, e.ID, e.Error, true), nil
			}
			if err := root.Append(s.backendError(b, e.ID, e.Error, false).Tree); err != nil {
				return nil, err
			}
			continue
		}

		ctx, err := s.cache.LookupOrBuild(e.ID, e.Attributes)
		if err != nil {
			return nil, err
		}

		node, err := s.serializeEntity(b, e, ctx, opts, hw)
		if err != nil {
			return nil, err
		}
		rendered++

		if opts.OneHit {
			root = node
		} else if err := root.Append(node); err != nil {
			return nil, err
		}
	}

	if err := b.Err(); err != nil {
		return nil, err
	}

	s.metrics.RecordEntities(rendered)
	return &Response{Tree: root, StatusCode: http.StatusOK, MimeType: mime}, nil
}

// backendError renders a backend error. Not found keeps its status only for
// single-entity requests; everything else is an internal error.
func (s *Serializer) backendError(b *tree.Builder, entityID string, code entity.ErrorCode, oneHit bool) *Response {
	status := backendStatus(code, oneHit)
	s.metrics.RecordEntityError(code.StatusCode())
	s.logger.Info("Backend error translated", "entity", entityID, "code", code.StatusCode(), "status", status)

	return &Response{
		Tree:       problemNode(b, code.StatusCode(), code.ReasonPhrase, code.Details),
		StatusCode: status,
		MimeType:   vocabulary.MimeTypeJSON,
	}
}

// SerializeEntity renders one entity with ctx: id, type, the filtered
// attributes with their metadata, then the @context member or Link header.
func (s *Serializer) SerializeEntity(e *entity.Entity, ctx *ldcontext.Context, opts Options, hw HeaderWriter) (*tree.Node, error) {
	if hw == nil {
		hw = discardHeaders{}
	}
	b := tree.NewBuilder(s.maxNodes)
	node, err := s.serializeEntity(b, e, ctx, opts, hw)
	if err != nil {
		return nil, err
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *Serializer) serializeEntity(b *tree.Builder, e *entity.Entity, ctx *ldcontext.Context, opts Options, hw HeaderWriter) (*tree.Node, error) {
	top := b.Object("")
	if err := top.Append(b.String("id", e.ID)); err != nil {
		return nil, err
	}
	if e.Type != "" {
		if err := top.Append(b.String("type", s.resolver.Compact(ctx, e.Type))); err != nil {
			return nil, err
		}
	}

	var ctxAttr *entity.Attribute
	for i := range e.Attributes {
		a := &e.Attributes[i]
		if a.Name == vocabulary.ContextMember {
			ctxAttr = a
			continue
		}
		if !opts.Filter.Match(a.Name) {
			continue
		}

		attr, err := s.attributeNode(b, ctx, a)
		if err != nil {
			return nil, err
		}
		if err := top.Append(attr); err != nil {
			return nil, err
		}
	}

	if err := s.emitContext(b, top, ctxAttr, opts.JSONLD, hw); err != nil {
		return nil, errors.WrapInvalid(err, "Serializer", "SerializeEntity", "emit @context of "+e.ID)
	}
	return top, nil
}

func (s *Serializer) attributeNode(b *tree.Builder, ctx *ldcontext.Context, a *entity.Attribute) (*tree.Node, error) {
	node := b.Object(s.resolver.Compact(ctx, a.Name))
	if a.Type != "" {
		if err := node.Append(b.String("type", a.Type)); err != nil {
			return nil, err
		}
	}
	if err := node.Append(valueNode(b, vocabulary.ValueFieldFor(a.Type), a.Value)); err != nil {
		return nil, err
	}

	for _, md := range a.Metadata {
		name := s.resolver.Compact(ctx, md.Name)

		var mdNode *tree.Node
		if md.Type != "" {
			mdNode = b.Object(name)
			if err := mdNode.Add(
				b.String("type", md.Type),
				valueNode(b, vocabulary.ValueFieldFor(md.Type), md.Value),
			); err != nil {
				return nil, err
			}
		} else {
			mdNode = valueNode(b, name, md.Value)
		}

		if err := node.Append(mdNode); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// emitContext adds the entity's context reference to top (JSON-LD) or hw (JSON).
func (s *Serializer) emitContext(b *tree.Builder, top *tree.Node, ctxAttr *entity.Attribute, jsonld bool, hw HeaderWriter) error {
	if ctxAttr == nil {
		if jsonld {
			return top.Append(b.String(vocabulary.ContextMember, s.coreContextURL))
		}
		hw.AddContextLink(s.coreContextURL)
		return nil
	}

	v := ctxAttr.Value
	if !jsonld {
		if v.Type == entity.ValueString {
			hw.AddContextLink(v.Str)
		} else {
			hw.AddContextLink("")
		}
		return nil
	}

	switch {
	case v.Type == entity.ValueString:
		return top.Append(b.String(vocabulary.ContextMember, v.Str))
	case v.IsCompound() && v.Compound.Kind == entity.CompoundArray:
		arr := b.Array(vocabulary.ContextMember)
		for _, u := range v.Compound.Strings() {
			if err := arr.Append(b.String("", u)); err != nil {
				return err
			}
		}
		return top.Append(arr)
	default:
		return fmt.Errorf("%w: cannot embed a %s @context", errors.ErrUnsupportedContextShape, contextShape(v))
	}
}

func contextShape(v entity.Value) string {
	if v.IsCompound() && v.Compound.Kind == entity.CompoundObject {
		return "inline object"
	}
	return v.Type.String()
}

// valueNode renders v under name. Values the backend never set render as
// entity.NotGivenSentinel.
func valueNode(b *tree.Builder, name string, v entity.Value) *tree.Node {
	switch v.Type {
	case entity.ValueString:
		return b.String(name, v.Str)
	case entity.ValueNumber:
		return b.Number(name, v.Num)
	case entity.ValueBoolean:
		return b.Boolean(name, v.Bool)
	case entity.ValueNull:
		return b.Null(name)
	case entity.ValueCompound:
		if v.Compound != nil {
			return compoundNode(b, name, v.Compound)
		}
	}
	return b.String(name, entity.NotGivenSentinel)
}

// compoundNode mirrors c without modifying it.
func compoundNode(b *tree.Builder, name string, c *entity.CompoundValue) *tree.Node {
	switch c.Kind {
	case entity.CompoundObject, entity.CompoundArray:
		var n *tree.Node
		if c.Kind == entity.CompoundObject {
			n = b.Object(name)
		} else {
			n = b.Array(name)
		}
		for _, child := range c.Children {
			childName := child.Name
			if c.Kind == entity.CompoundArray {
				childName = ""
			}
			// Fresh nodes from the builder; Append cannot fail here.
			_ = n.Append(compoundNode(b, childName, child))
		}
		return n
	case entity.CompoundString:
		return b.String(name, c.Str)
	case entity.CompoundNumber:
		return b.Number(name, c.Num)
	case entity.CompoundBoolean:
		return b.Boolean(name, c.Bool)
	default:
		return b.Null(name)
	}
}
