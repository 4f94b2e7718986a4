package httppool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/testutil"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
)

func TestLoader_LoadDocument(t *testing.T) {
	srv := testutil.NewContextServer(t, map[string]string{
		"/vehicle.jsonld": testutil.VehicleContext,
		"/broken.jsonld":  `{"@context": `,
	})

	p := newTestPool(t)
	loader := NewLoader(p, time.Second)

	doc, err := loader.LoadDocument(srv.URLFor("/vehicle.jsonld"))
	require.NoError(t, err)
	assert.Equal(t, srv.URLFor("/vehicle.jsonld"), doc.DocumentURL)

	root, ok := doc.Document.(*tree.Node)
	require.True(t, ok)
	ctx := root.Member("@context")
	require.NotNil(t, ctx)
	assert.Equal(t, "ex:Vehicle", ctx.Member("Vehicle").Str())
	assert.Equal(t, 1, srv.Hits("/vehicle.jsonld"))

	m, ok := root.ToInterface().(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "@context")

	_, err = loader.LoadDocument(srv.URLFor("/broken.jsonld"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParsingFailed))

	_, err = loader.LoadDocument("not-a-url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrURLParse))
}

func TestLoader_KeepsMemberOrder(t *testing.T) {
	srv := testutil.NewContextServer(t, map[string]string{
		"/order.jsonld": `{"@context": {"zeta": "http://ex/a", "mid": "http://ex/m", "alpha": "http://ex/a"}}`,
	})

	doc, err := NewLoader(newTestPool(t), time.Second).LoadDocument(srv.URLFor("/order.jsonld"))
	require.NoError(t, err)

	root, ok := doc.Document.(*tree.Node)
	require.True(t, ok)
	var names []string
	for _, m := range root.Member("@context").Children() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"zeta", "mid", "alpha"}, names)
}
