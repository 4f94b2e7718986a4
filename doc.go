// Package orionld is the context-resolution and entity-serialization core of
// an NGSI-LD context broker.
//
// The broker's backend answers queries with a batch of stored entities whose
// types and attribute names are long IRIs. This module turns such a batch
// into the NGSI-LD representation a client sees: names shortened through the
// entity's @context, attribute values shaped by type, and the context itself
// either embedded (application/ld+json) or announced in a Link header
// (application/json).
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         serializer                  │  Batch and entity rendering,
//	│  (filter, oneHit, @context policy)  │  problem details, Link headers
//	└─────────────────────────────────────┘
//	           ↓ asks for contexts
//	┌─────────────────────────────────────┐
//	│         ldcontext                   │  Context per entity and per URL,
//	│  (Cache, Builder, Resolver)         │  single-flight builds, aliasing
//	└─────────────────────────────────────┘
//	           ↓ fetches remote documents
//	┌─────────────────────────────────────┐
//	│         pkg/httppool                │  Per-host handle pool, GET into
//	│  (Pool, Loader)                     │  a size-limited pkg/buffer
//	└─────────────────────────────────────┘
//
// Output is built as a tree (package tree) under an optional node budget and
// marshaled once. Backend batches are decoded by package entity. Package
// endpoint validates notification endpoint descriptors independently of the
// rest.
//
// # Ambient Packages
//
//   - errors: classified errors (transient, invalid, fatal) and sentinels
//   - config: layered JSON/YAML configuration with ORIONLD_* overrides
//   - metric: Prometheus registry, core broker metrics, /metrics server
//   - health: per-part health tracking served on /health
//   - pkg/cache: generic cache with statistics backing ldcontext
//   - pkg/security, pkg/tlsutil: client TLS for remote @context fetches
//
// # Command
//
// cmd/orionld-render wires everything together and renders a backend batch
// file:
//
//	orionld-render --input=batch.json --one-hit --jsonld
//
// # Concurrency
//
// Serializer, Cache, Resolver and Pool are safe for concurrent use. Context
// entries are inserted once and never replaced; concurrent builds for the
// same entity or URL collapse into one. No component retries internally: a
// failed fetch or build is reported to the caller.
package orionld
