// Package entity holds the backend representation of NGSI-LD entities that
// the serializer renders: entities, attributes, metadata, tagged values and
// recursive compound values, plus the per-entity and per-batch status codes.
//
// The types are produced by the query backend and are read-only to the
// rendering core. DecodeBatch reads the JSON form of a backend batch, keeping
// object member order inside compound values.
package entity
