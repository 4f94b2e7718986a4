package httppool

import (
	"context"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
)

// Loader fetches JSON-LD documents through a Pool.
type Loader struct {
	pool    *Pool
	timeout time.Duration
	ctx     context.Context
}

var _ ld.DocumentLoader = (*Loader)(nil)

// NewLoader returns a document loader that fetches with the given per-request timeout.
func NewLoader(pool *Pool, timeout time.Duration) *Loader {
	return &Loader{pool: pool, timeout: timeout, ctx: context.Background()}
}

// WithContext returns a copy of the loader bound to ctx.
func (l *Loader) WithContext(ctx context.Context) *Loader {
	cp := *l
	cp.ctx = ctx
	return &cp
}

// LoadDocument fetches u and parses the body as JSON. The document is a
// *tree.Node so that member order survives; use ToInterface for the plain
// form other json-gold consumers expect.
func (l *Loader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	buf, err := l.pool.Get(l.ctx, u, l.timeout)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	doc, err := tree.Parse(buf.Bytes())
	if err != nil {
		return nil, errors.WrapInvalid(errors.ErrParsingFailed, "Loader", "LoadDocument",
			"parse document from "+u+": "+err.Error())
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}
