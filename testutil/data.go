package testutil

// Shared NGSI-LD fixtures. Entity types and attribute names are expanded
// against the default context, as a backend stores them.

// VehicleContext is a user @context document defining a few terms.
const VehicleContext = `{
  "@context": {
    "ex": "https://example.org/ns/",
    "Vehicle": "ex:Vehicle",
    "speed": "https://example.org/ns/speed",
    "owner": {"@id": "ex:owner", "@type": "@id"}
  }
}`

// VehicleTerms is the term map VehicleContext resolves to.
var VehicleTerms = map[string]string{
	"ex":      "https://example.org/ns/",
	"Vehicle": "https://example.org/ns/Vehicle",
	"speed":   "https://example.org/ns/speed",
	"owner":   "https://example.org/ns/owner",
}

// BareTermDocument is a remote document without a top-level @context member.
const BareTermDocument = `{"brand": "https://example.org/ns/brand"}`

// VehicleBatch is a backend batch with a single vehicle and no @context attribute.
const VehicleBatch = `{
  "errorCode": {"code": 200},
  "entities": [
    {
      "id": "urn:ngsi-ld:Vehicle:A1",
      "type": "https://uri.etsi.org/ngsi-ld/default-context/Vehicle",
      "attributes": [
        {"name": "https://uri.etsi.org/ngsi-ld/default-context/speed", "type": "Property", "value": 80,
         "metadata": [{"name": "https://uri.etsi.org/ngsi-ld/default-context/unitCode", "value": "KMH"}]},
        {"name": "https://uri.etsi.org/ngsi-ld/default-context/owner", "type": "Relationship",
         "value": "urn:ngsi-ld:Person:1"}
      ]
    }
  ]
}`

// NotFoundBatch is a backend batch reporting 404 for the whole query.
const NotFoundBatch = `{"errorCode": {"code": 404, "reasonPhrase": "Not Found", "details": "no such entity"}}`

// EndpointJSON is a valid endpoint descriptor.
const EndpointJSON = `{"uri": "http://example.org/notify", "accept": "application/ld+json"}`
