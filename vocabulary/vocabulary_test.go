package vocabulary

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueFieldFor(t *testing.T) {
	assert.Equal(t, "object", ValueFieldFor("Relationship"))
	assert.Equal(t, "value", ValueFieldFor("Property"))
	assert.Equal(t, "value", ValueFieldFor(""))
	assert.Equal(t, "value", ValueFieldFor("relationship"), "type match is case sensitive")
}

func TestSplitCompactIRI(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPrefix string
		wantSuffix string
		wantOK     bool
	}{
		{"ngsi-ld term", "ngsi-ld:Property", "ngsi-ld", "Property", true},
		{"empty suffix", "ex:", "ex", "", true},
		{"absolute http IRI", "http://example.org/temp", "", "", false},
		{"absolute https IRI", "https://example.org/temp", "", "", false},
		{"urn", "urn:ngsi-ld:Vehicle:A1", "urn", "ngsi-ld:Vehicle:A1", true},
		{"no colon", "temperature", "", "", false},
		{"leading digit prefix", "1x:y", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, suffix, ok := SplitCompactIRI(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("@context"))
	assert.True(t, IsKeyword("@id"))
	assert.False(t, IsKeyword("id"))
}

func TestCoreTerms(t *testing.T) {
	terms := CoreTerms()

	assert.Equal(t, NGSILDNamespace+"Property", terms["Property"])
	assert.Equal(t, NGSILDNamespace+"observedAt", terms["observedAt"])
	for term := range terms {
		assert.False(t, IsKeyword(term), "core terms must not contain keywords: %s", term)
	}

	terms["Property"] = "mutated"
	assert.Equal(t, NGSILDNamespace+"Property", CoreTerms()["Property"], "CoreTerms returns a copy")
}

func TestContextURLs(t *testing.T) {
	assert.True(t, strings.HasPrefix(DefaultURL, NGSILDNamespace))
	assert.True(t, strings.HasSuffix(CoreContextURL, ".jsonld"))
}

func TestErrorTypeForStatus(t *testing.T) {
	assert.Equal(t, ErrorTypeResourceNotFound, ErrorTypeForStatus(http.StatusNotFound))
	assert.Equal(t, ErrorTypeBadRequestData, ErrorTypeForStatus(http.StatusBadRequest))
	assert.Equal(t, ErrorTypeAlreadyExists, ErrorTypeForStatus(http.StatusConflict))
	assert.Equal(t, ErrorTypeInternalError, ErrorTypeForStatus(http.StatusInternalServerError))
	assert.Equal(t, ErrorTypeInternalError, ErrorTypeForStatus(299))
}
