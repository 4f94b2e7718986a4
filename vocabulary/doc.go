// Package vocabulary provides the NGSI-LD vocabulary: namespace and context
// URLs, the core context term map and the NGSI-LD error type IRIs.
//
// The vocabulary is data only. Brokers pass DefaultURL and CoreContextURL
// explicitly to the components that need them (config overrides both); nothing
// here is mutable process state.
//
// # Compact IRIs
//
// SplitCompactIRI recognises "prefix:suffix" names, leaving absolute IRIs such
// as "http://example.org/x" alone:
//
//	prefix, suffix, ok := vocabulary.SplitCompactIRI("ngsi-ld:Property")
//	// "ngsi-ld", "Property", true
package vocabulary
