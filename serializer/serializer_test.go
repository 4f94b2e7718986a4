package serializer

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedSadiq102/context.Orion-LD/entity"
	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/ldcontext"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
	"github.com/MohamedSadiq102/context.Orion-LD/testutil"
	"github.com/MohamedSadiq102/context.Orion-LD/tree"
	"github.com/MohamedSadiq102/context.Orion-LD/vocabulary"
)

const (
	vehicleURL = "https://example.org/vehicle.jsonld"
	extraURL   = "https://example.org/extra.jsonld"
)

type fixture struct {
	cache  *ldcontext.Cache
	loader *testutil.MockLoader
	ser    *Serializer
}

func newFixture(t *testing.T, options ...Option) *fixture {
	t.Helper()

	loader := testutil.NewMockLoader()
	loader.Put(vehicleURL, map[string]any{"@context": map[string]any{"speed": "https://example.org/ns/speed"}})
	loader.Put(extraURL, map[string]any{"@context": map[string]any{"brand": "https://example.org/ns/brand"}})

	core := ldcontext.NewCoreContext(vocabulary.CoreContextURL, vocabulary.CoreTerms())
	cache, err := ldcontext.NewCache(core, loader)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	ser, err := New(cache, ldcontext.NewResolver(vocabulary.DefaultURL), options...)
	require.NoError(t, err)

	return &fixture{cache: cache, loader: loader, ser: ser}
}

func render(t *testing.T, n *tree.Node) string {
	t.Helper()
	out, err := json.Marshal(n)
	require.NoError(t, err)
	return string(out)
}

func decode(t *testing.T, n *tree.Node) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(render(t, n)), &v))
	return v
}

func TestSerialize_EndToEnd(t *testing.T) {
	f := newFixture(t)

	inline := entity.CompoundOf(entity.Object(
		entity.Member{Name: "temp", Value: entity.String("http://ex/temp")},
		entity.Member{Name: "T", Value: entity.String("http://ex/Type")},
	))
	ctx, err := ldcontext.NewBuilder(nil, 0, nil).Build("urn:ex:1", inline)
	require.NoError(t, err)
	_, err = f.cache.Insert("urn:ex:1", ctx)
	require.NoError(t, err)

	batch := &entity.Batch{Entities: []entity.Entity{{
		ID:   "urn:ex:1",
		Type: "http://ex/Type",
		Attributes: []entity.Attribute{
			{Name: "http://ex/temp", Value: entity.NumberValue(21.5)},
		},
	}}}

	links := &LinkHeaders{}
	resp, err := f.ser.Serialize(batch, Options{Filter: ParseAttributeFilter(",http://ex/temp,"), OneHit: true}, links)
	require.NoError(t, err)

	assert.Equal(t, `{"id":"urn:ex:1","type":"T","temp":{"value":21.5}}`, render(t, resp.Tree))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, vocabulary.MimeTypeJSON, resp.MimeType)
	assert.Equal(t, []string{FormatLink(vocabulary.CoreContextURL)}, links.Values())
}

func TestSerialize_FilterExactness(t *testing.T) {
	f := newFixture(t)

	e := entity.Entity{ID: "urn:x", Attributes: []entity.Attribute{
		{Name: "a", Value: entity.NumberValue(1)},
		{Name: "ab", Value: entity.NumberValue(2)},
		{Name: "ba", Value: entity.NumberValue(3)},
		{Name: "b", Value: entity.NumberValue(4)},
	}}

	for _, filter := range []string{",a,ab,", "a,ab"} {
		t.Run(filter, func(t *testing.T) {
			node, err := f.ser.SerializeEntity(&e, f.cache.Core(), Options{Filter: ParseAttributeFilter(filter)}, nil)
			require.NoError(t, err)
			assert.Equal(t, `{"id":"urn:x","a":{"value":1},"ab":{"value":2}}`, render(t, node))
		})
	}

	node, err := f.ser.SerializeEntity(&e, f.cache.Core(), Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"urn:x"}`, render(t, node), "zero filter matches nothing")

	node, err = f.ser.SerializeEntity(&e, f.cache.Core(), Options{Filter: MatchAllAttributes()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, node.Len())
}

func TestSerialize_OneHitInvariant(t *testing.T) {
	f := newFixture(t)

	two := &entity.Batch{Entities: []entity.Entity{{ID: "urn:a"}, {ID: "urn:b"}}}
	resp, err := f.ser.Serialize(two, Options{OneHit: true, Filter: MatchAllAttributes()}, nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, errors.ErrTooManyResults))
	assert.True(t, errors.IsFatal(err))

	problem := ErrorResponseFor(err)
	assert.Equal(t, http.StatusInternalServerError, problem.StatusCode)

	resp, err = f.ser.Serialize(&entity.Batch{}, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", render(t, resp.Tree))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = f.ser.Serialize(&entity.Batch{}, Options{OneHit: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, vocabulary.ErrorTypeResourceNotFound, resp.Tree.Member("type").Str())
}

func TestSerialize_ArrayMode(t *testing.T) {
	f := newFixture(t)

	batch := &entity.Batch{Entities: []entity.Entity{
		{ID: "urn:a", Type: vocabulary.DefaultURL + "Vehicle"},
		{ID: "urn:b", Error: entity.ErrorCode{Code: 404, ReasonPhrase: "Not Found", Details: "urn:b"}},
		{ID: "urn:c", Type: "https://uri.etsi.org/ngsi-ld/Subscription"},
	}}

	links := &LinkHeaders{}
	resp, err := f.ser.Serialize(batch, Options{Filter: MatchAllAttributes()}, links)
	require.NoError(t, err)

	want := []any{
		map[string]any{"id": "urn:a", "type": "Vehicle"},
		map[string]any{
			"type":   vocabulary.ErrorTypeResourceNotFound,
			"title":  "Not Found",
			"detail": "urn:b",
		},
		map[string]any{"id": "urn:c", "type": "Subscription"},
	}
	if diff := cmp.Diff(want, decode(t, resp.Tree)); diff != "" {
		t.Errorf("array output mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{FormatLink(vocabulary.CoreContextURL)}, links.Values(), "links are deduplicated")
}

func TestSerialize_BackendErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		batch   *entity.Batch
		opts    Options
		status  int
		errType string
	}{
		{
			name:    "batch not found",
			batch:   &entity.Batch{Error: entity.ErrorCode{Code: 404}, Entities: []entity.Entity{{ID: "urn:a"}}},
			opts:    Options{OneHit: true},
			status:  http.StatusNotFound,
			errType: vocabulary.ErrorTypeResourceNotFound,
		},
		{
			name:    "batch not found in array mode",
			batch:   &entity.Batch{Error: entity.ErrorCode{Code: 404}, Entities: []entity.Entity{{ID: "urn:a"}}},
			opts:    Options{},
			status:  http.StatusInternalServerError,
			errType: vocabulary.ErrorTypeResourceNotFound,
		},
		{
			name:    "batch bad request is not passed through",
			batch:   &entity.Batch{Error: entity.ErrorCode{Code: 400, ReasonPhrase: "Bad"}},
			opts:    Options{OneHit: true},
			status:  http.StatusInternalServerError,
			errType: vocabulary.ErrorTypeBadRequestData,
		},
		{
			name:    "single entity error under oneHit",
			batch:   &entity.Batch{Entities: []entity.Entity{{ID: "urn:a", Error: entity.ErrorCode{Code: 500}}}},
			opts:    Options{OneHit: true},
			status:  http.StatusInternalServerError,
			errType: vocabulary.ErrorTypeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.ser.Serialize(tt.batch, tt.opts, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.errType, resp.Tree.Member("type").Str())
			assert.Equal(t, vocabulary.MimeTypeJSON, resp.MimeType)
		})
	}

	resp, err := f.ser.Serialize(&entity.Batch{Error: entity.ErrorCode{Code: 500}}, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", render(t, resp.Tree), "no hits without oneHit is an empty array")
}

func TestSerializeEntity_AttributesAndMetadata(t *testing.T) {
	f := newFixture(t)

	e := entity.Entity{
		ID:   "urn:ngsi-ld:Vehicle:A1",
		Type: vocabulary.DefaultURL + "Vehicle",
		Attributes: []entity.Attribute{
			{
				Name: vocabulary.DefaultURL + "speed", Type: "Property", Value: entity.NumberValue(80),
				Metadata: []entity.Metadata{
					{Name: vocabulary.NGSILDNamespace + "unitCode", Value: entity.StringValue("KMH")},
					{Name: "source", Type: "Relationship", Value: entity.StringValue("urn:ngsi-ld:Sensor:1")},
					{Name: "quality", Type: "Property", Value: entity.CompoundOf(entity.Array(entity.Number(1), entity.Number(2)))},
					{Name: "extra", Value: entity.CompoundOf(entity.Object(entity.Member{Name: "k", Value: entity.Bool(false)}))},
					{Name: "lost", Value: entity.Value{}},
				},
			},
			{Name: "owner", Type: "Relationship", Value: entity.StringValue("urn:ngsi-ld:Person:1")},
			{Name: "address", Type: "Property", Value: entity.CompoundOf(entity.Object(
				entity.Member{Name: "x", Value: entity.Number(1)},
				entity.Member{Name: "y", Value: entity.Array(entity.Bool(true), entity.Null())},
			))},
			{Name: "broken", Value: entity.Value{}},
			{Name: "gone", Type: "Property", Value: entity.NullValue()},
		},
	}

	node, err := f.ser.SerializeEntity(&e, f.cache.Core(), Options{Filter: MatchAllAttributes()}, nil)
	require.NoError(t, err)

	want := `{"id":"urn:ngsi-ld:Vehicle:A1","type":"Vehicle",` +
		`"speed":{"type":"Property","value":80,"unitCode":"KMH",` +
		`"source":{"type":"Relationship","object":"urn:ngsi-ld:Sensor:1"},` +
		`"quality":{"type":"Property","value":[1,2]},` +
		`"extra":{"k":false},` +
		`"lost":"UNKNOWN TYPE"},` +
		`"owner":{"type":"Relationship","object":"urn:ngsi-ld:Person:1"},` +
		`"address":{"type":"Property","value":{"x":1,"y":[true,null]}},` +
		`"broken":{"value":"UNKNOWN TYPE"},` +
		`"gone":{"type":"Property","value":null}}`
	assert.Equal(t, want, render(t, node))

	addr := e.Attributes[2].Value.Compound
	assert.Equal(t, "x", addr.Children[0].Name, "source compound is left untouched")
}

func TestSerializeEntity_ContextEmission(t *testing.T) {
	f := newFixture(t)

	urlList := entity.CompoundOf(entity.Array(entity.String(vehicleURL), entity.String(extraURL)))
	inline := entity.CompoundOf(entity.Object(entity.Member{Name: "temp", Value: entity.String("http://ex/temp")}))

	tests := []struct {
		name      string
		ctxValue  *entity.Value
		jsonld    bool
		wantCtx   any
		wantLinks []string
		pending   int
		wantErr   error
	}{
		{name: "none json", wantLinks: []string{vocabulary.CoreContextURL}},
		{name: "none jsonld", jsonld: true, wantCtx: vocabulary.CoreContextURL},
		{name: "string json", ctxValue: ptr(entity.StringValue(vehicleURL)), wantLinks: []string{vehicleURL}},
		{name: "string jsonld", ctxValue: ptr(entity.StringValue(vehicleURL)), jsonld: true, wantCtx: vehicleURL},
		{name: "array json", ctxValue: &urlList, pending: 1},
		{name: "array jsonld", ctxValue: &urlList, jsonld: true, wantCtx: []any{vehicleURL, extraURL}},
		{name: "object json", ctxValue: &inline, pending: 1},
		{name: "object jsonld", ctxValue: &inline, jsonld: true, wantErr: errors.ErrUnsupportedContextShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entity.Entity{ID: "urn:" + strings.ReplaceAll(tt.name, " ", "-")}
			if tt.ctxValue != nil {
				e.Attributes = []entity.Attribute{{Name: "@context", Value: *tt.ctxValue}}
			}

			ctx, err := f.cache.LookupOrBuild(e.ID, e.Attributes)
			require.NoError(t, err)

			links := &LinkHeaders{}
			node, err := f.ser.SerializeEntity(&e, ctx, Options{Filter: MatchAllAttributes(), JSONLD: tt.jsonld}, links)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.True(t, errors.IsInvalid(err))
				return
			}
			require.NoError(t, err)

			got := decode(t, node).(map[string]any)
			assert.Equal(t, tt.wantCtx, got["@context"])
			assert.Equal(t, tt.wantLinks, nilIfEmpty(links.URLs()))
			assert.Equal(t, tt.pending, links.Pending())
		})
	}
}

func TestSerialize_JSONLDMimeType(t *testing.T) {
	f := newFixture(t)

	resp, err := f.ser.Serialize(&entity.Batch{Entities: []entity.Entity{{ID: "urn:a"}}},
		Options{OneHit: true, JSONLD: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, vocabulary.MimeTypeJSONLD, resp.MimeType)
	assert.Equal(t, `{"id":"urn:a","@context":"`+vocabulary.CoreContextURL+`"}`, render(t, resp.Tree))
}

func TestSerialize_ContextBuildFailure(t *testing.T) {
	f := newFixture(t)

	batch := &entity.Batch{Entities: []entity.Entity{{
		ID:         "urn:a",
		Attributes: []entity.Attribute{{Name: "@context", Value: entity.StringValue("https://example.org/missing.jsonld")}},
	}}}

	_, err := f.ser.Serialize(batch, Options{OneHit: true}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrContextBuild))

	problem := ErrorResponseFor(err)
	assert.Equal(t, http.StatusBadRequest, problem.StatusCode)
	assert.Equal(t, vocabulary.ErrorTypeBadRequestData, problem.Tree.Member("type").Str())
}

func TestSerialize_NodeLimit(t *testing.T) {
	f := newFixture(t, WithMaxNodes(4))

	batch := &entity.Batch{Entities: []entity.Entity{{
		ID: "urn:a",
		Attributes: []entity.Attribute{
			{Name: "a", Value: entity.NumberValue(1)},
			{Name: "b", Value: entity.NumberValue(2)},
		},
	}}}

	_, err := f.ser.Serialize(batch, Options{Filter: MatchAllAttributes()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfMemory))
	assert.Equal(t, http.StatusInternalServerError, ErrorResponseFor(err).StatusCode)
}

func TestSerialize_Metrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	f := newFixture(t, WithMetrics(registry.CoreMetrics()))
	m := registry.CoreMetrics()

	_, err := f.ser.Serialize(&entity.Batch{Entities: []entity.Entity{{ID: "urn:a"}, {ID: "urn:b"}}}, Options{}, nil)
	require.NoError(t, err)
	_, err = f.ser.Serialize(&entity.Batch{Entities: []entity.Entity{{ID: "urn:a"}, {ID: "urn:b"}}}, Options{OneHit: true}, nil)
	require.Error(t, err)
	_, err = f.ser.Serialize(&entity.Batch{Error: entity.ErrorCode{Code: 404}, Entities: []entity.Entity{{ID: "urn:a"}}}, Options{OneHit: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Serializations.WithLabelValues("json", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Serializations.WithLabelValues("json", "500")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Serializations.WithLabelValues("json", "404")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.EntitiesSerialized))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.EntityErrors.WithLabelValues("404")))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestErrorResponse(t *testing.T) {
	n := ErrorResponse(http.StatusConflict, "Already Exists", "urn:a")
	assert.Equal(t,
		`{"type":"`+vocabulary.ErrorTypeAlreadyExists+`","title":"Already Exists","detail":"urn:a"}`,
		render(t, n))
}

func ptr(v entity.Value) *entity.Value { return &v }

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
