package vocabulary

// coreTerms lists the terms of the NGSI-LD core context that name IRIs.
// Keyword aliases such as "id" -> "@id" are left out: they never appear as
// expanded names in entity data.
var coreTerms = map[string]string{
	"ngsi-ld":          NGSILDNamespace,
	"geojson":          "https://purl.org/geojson/vocab#",
	"Property":         NGSILDNamespace + "Property",
	"Relationship":     NGSILDNamespace + "Relationship",
	"GeoProperty":      NGSILDNamespace + "GeoProperty",
	"hasValue":         NGSILDNamespace + "hasValue",
	"hasObject":        NGSILDNamespace + "hasObject",
	"observedAt":       NGSILDNamespace + "observedAt",
	"createdAt":        NGSILDNamespace + "createdAt",
	"modifiedAt":       NGSILDNamespace + "modifiedAt",
	"datasetId":        NGSILDNamespace + "datasetId",
	"instanceId":       NGSILDNamespace + "instanceId",
	"unitCode":         NGSILDNamespace + "unitCode",
	"location":         NGSILDNamespace + "location",
	"observationSpace": NGSILDNamespace + "observationSpace",
	"operationSpace":   NGSILDNamespace + "operationSpace",
	"name":             NGSILDNamespace + "name",
	"description":      "http://purl.org/dc/terms/description",
	"endpoint":         NGSILDNamespace + "endpoint",
	"accept":           NGSILDNamespace + "accept",
	"uri":              NGSILDNamespace + "uri",
	"notification":     NGSILDNamespace + "notification",
	"Subscription":     NGSILDNamespace + "Subscription",
	"Point":            "https://purl.org/geojson/vocab#Point",
	"LineString":       "https://purl.org/geojson/vocab#LineString",
	"Polygon":          "https://purl.org/geojson/vocab#Polygon",
	"MultiPoint":       "https://purl.org/geojson/vocab#MultiPoint",
	"MultiLineString":  "https://purl.org/geojson/vocab#MultiLineString",
	"MultiPolygon":     "https://purl.org/geojson/vocab#MultiPolygon",
	"coordinates":      "https://purl.org/geojson/vocab#coordinates",
}

// CoreTerms returns a fresh copy of the core context term map.
func CoreTerms() map[string]string {
	terms := make(map[string]string, len(coreTerms))
	for k, v := range coreTerms {
		terms[k] = v
	}
	return terms
}
