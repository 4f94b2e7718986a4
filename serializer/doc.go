// Package serializer renders backend entity batches as NGSI-LD output trees.
//
// For every entity the serializer emits "id", the compacted "type" and each
// attribute selected by the AttributeFilter, keyed by its compacted name.
// Attribute values go under "value", or "object" for relationships; compound
// values are mirrored member by member. Metadata with a type become objects
// like attributes do; untyped metadata hold their value directly.
//
// The entity's @context is conveyed as follows:
//
//	                      plain JSON                  JSON-LD
//	no @context attribute Link to the core context    "@context": core context URL
//	string                Link to that URL            "@context": the string
//	array                 placeholder Link            "@context": its string elements
//	object                placeholder Link            errors.ErrUnsupportedContextShape
//
// Link headers are handed to a HeaderWriter; LinkHeaders collects and
// formats them.
//
// Contexts come from an ldcontext.Cache and names are compacted with an
// ldcontext.Resolver. Backend errors are translated into NGSI-LD problem
// details; structural failures are returned as classified errors and can be
// turned into a response with ErrorResponseFor.
package serializer
