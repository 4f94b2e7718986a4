package entity

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

func TestErrorCode_OK(t *testing.T) {
	tests := []struct {
		name   string
		code   ErrorCode
		ok     bool
		status int
	}{
		{"unset", ErrorCode{}, true, 200},
		{"explicit 200", ErrorCode{Code: 200}, true, 200},
		{"not found", ErrorCode{Code: 404}, false, 404},
		{"server error", ErrorCode{Code: 500}, false, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.code.OK())
			assert.Equal(t, tt.status, tt.code.StatusCode())
		})
	}
}

func TestEntity_AttributeLookup(t *testing.T) {
	e := Entity{
		ID: "urn:ngsi-ld:Vehicle:A1",
		Attributes: []Attribute{
			{Name: "speed", Type: "Property", Value: NumberValue(80)},
			{Name: "@context", Value: StringValue("https://example.org/ctx.jsonld")},
		},
	}

	a, ok := e.Attribute("speed")
	require.True(t, ok)
	assert.Equal(t, 80.0, a.Value.Num)

	_, ok = e.Attribute("missing")
	assert.False(t, ok)

	c, ok := e.ContextAttribute()
	require.True(t, ok)
	assert.Equal(t, ValueString, c.Value.Type)
}

func TestEntity_Validate(t *testing.T) {
	err := (&Entity{}).Validate()
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	err = (&Entity{ID: "urn:x", Attributes: []Attribute{{}}}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidData))

	assert.NoError(t, (&Entity{ID: "urn:x"}).Validate())
}

func TestCompoundConstructors(t *testing.T) {
	c := Object(
		Member{"street", String("Main")},
		Member{"tags", Array(String("a"), Number(1), String("b"))},
		Member{"open", Bool(true)},
		Member{"note", Null()},
	)

	require.Len(t, c.Children, 4)
	assert.Equal(t, "street", c.Children[0].Name)
	assert.Equal(t, CompoundArray, c.Children[1].Kind)
	assert.Equal(t, []string{"a", "b"}, c.Children[1].Strings())
	assert.Nil(t, c.Strings())

	assert.False(t, CompoundOf(nil).IsCompound())
	assert.True(t, CompoundOf(c).IsCompound())
}

func TestValueType_String(t *testing.T) {
	assert.Equal(t, "NotGiven", ValueNotGiven.String())
	assert.Equal(t, "Compound", ValueCompound.String())
	assert.Equal(t, "Null", NullValue().Type.String())
}

const batchJSON = `{
  "errorCode": {"code": 200, "reasonPhrase": "OK"},
  "entities": [
    {
      "id": "urn:ngsi-ld:Vehicle:A1",
      "type": "https://uri.etsi.org/ngsi-ld/default-context/Vehicle",
      "attributes": [
        {"name": "speed", "type": "Property", "value": 80,
         "metadata": [{"name": "unitCode", "value": "KMH"}]},
        {"name": "address", "type": "Property",
         "value": {"zip": "1", "city": "X", "lines": ["a", "b"]}},
        {"name": "owner", "type": "Relationship", "value": "urn:ngsi-ld:Person:1"},
        {"name": "pending", "type": "Property"}
      ]
    },
    {"id": "urn:ngsi-ld:Vehicle:B2", "errorCode": {"code": 404, "details": "gone"}}
  ]
}`

func TestDecodeBatch(t *testing.T) {
	b, err := DecodeBatch(strings.NewReader(batchJSON))
	require.NoError(t, err)

	assert.True(t, b.Error.OK())
	require.Len(t, b.Entities, 2)

	v := b.Entities[0]
	assert.Equal(t, "urn:ngsi-ld:Vehicle:A1", v.ID)
	require.Len(t, v.Attributes, 4)

	speed := v.Attributes[0]
	assert.Equal(t, NumberValue(80), speed.Value)
	require.Len(t, speed.Metadata, 1)
	assert.Equal(t, "unitCode", speed.Metadata[0].Name)
	assert.Equal(t, "", speed.Metadata[0].Type)

	addr := v.Attributes[1].Value
	require.True(t, addr.IsCompound())
	names := make([]string, 0, len(addr.Compound.Children))
	for _, c := range addr.Compound.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zip", "city", "lines"}, names)
	assert.Equal(t, []string{"a", "b"}, addr.Compound.Children[2].Strings())

	assert.Equal(t, ValueNotGiven, v.Attributes[3].Value.Type)

	missing := b.Entities[1]
	assert.False(t, missing.Error.OK())
	assert.Equal(t, 404, missing.Error.Code)
	assert.Equal(t, "gone", missing.Error.Details)
}

func TestDecodeBatch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"not json", `{`, nil},
		{"array root", `[]`, errors.ErrInvalidData},
		{"entities not array", `{"entities": {}}`, errors.ErrInvalidData},
		{"missing id", `{"entities": [{"type": "T"}]}`, errors.ErrMissingRequiredField},
		{"id not string", `{"entities": [{"id": 7}]}`, errors.ErrTypeMismatch},
		{"code not number", `{"errorCode": {"code": "x"}}`, errors.ErrTypeMismatch},
		{"attribute without name", `{"entities": [{"id": "a", "attributes": [{"value": 1}]}]}`, errors.ErrMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBatch(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			if tt.target != nil {
				assert.True(t, stderrors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}
