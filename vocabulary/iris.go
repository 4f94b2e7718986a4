package vocabulary

import (
	"regexp"
	"strings"
)

// NGSI-LD namespaces and well-known context URLs
const (
	// NGSILDNamespace is the namespace of every NGSI-LD core term.
	NGSILDNamespace = "https://uri.etsi.org/ngsi-ld/"

	// DefaultURL is the namespace given to names no context maps. It is also
	// the prefix stripped by the alias fast path.
	DefaultURL = NGSILDNamespace + "default-context/"

	// CoreContextURL is the URL of the NGSI-LD core @context document.
	CoreContextURL = NGSILDNamespace + "v1/ngsi-ld-core-context.jsonld"

	// JSONLDContextRel is the Link relation used to convey @context in plain JSON responses.
	JSONLDContextRel = "http://www.w3.org/ns/json-ld#context"
)

// Media types of NGSI-LD payloads
const (
	MimeTypeJSON   = "application/json"
	MimeTypeJSONLD = "application/ld+json"
)

// Attribute types and value fields
const (
	TypeProperty     = "Property"
	TypeRelationship = "Relationship"
	TypeGeoProperty  = "GeoProperty"

	// ValueField holds the value of properties and untyped metadata.
	ValueField = "value"
	// ObjectField holds the target of relationships.
	ObjectField = "object"

	// ContextMember is the name of the @context attribute and output member.
	ContextMember = "@context"
)

// ValueFieldFor returns the member name holding the value of an attribute or
// metadata of the given type.
func ValueFieldFor(attrType string) string {
	if attrType == TypeRelationship {
		return ObjectField
	}
	return ValueField
}

// compactIRIPattern matches "prefix:suffix" where the suffix does not start with "//".
var compactIRIPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9._-]*):([^/].*|/[^/].*|)$`)

// IsKeyword reports whether name is a JSON-LD keyword such as "@id".
func IsKeyword(name string) bool {
	return strings.HasPrefix(name, "@")
}

// SplitCompactIRI splits a compact IRI "prefix:suffix" into its parts. Absolute
// IRIs ("http://...") and names without a colon are not compact.
func SplitCompactIRI(name string) (prefix, suffix string, ok bool) {
	m := compactIRIPattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
