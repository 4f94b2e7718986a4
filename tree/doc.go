// Package tree is the ordered JSON tree the serializer builds responses in.
//
// A Builder creates nodes and enforces a node budget; exceeding it records
// errors.ErrOutOfMemory, which the caller checks once with Err after building.
// Every node has at most one parent: Append takes ownership of the child and
// refuses a node that is already attached.
//
// Unlike map-based decoding, Parse keeps object members in document order and
// preserves repeated member names, which the endpoint validator needs to detect
// duplicated fields.
package tree
