// Package testutil provides shared fixtures and fakes for tests.
//
// ContextServer is an httptest server that serves static JSON-LD context
// documents and counts requests per path, for tests of remote @context
// fetching. MockLoader is an in-memory ld.DocumentLoader that records its
// calls and can hold loads in flight through its Gate channel, for tests of
// single-flight context building.
//
// The fixtures in data.go are backend batches, context documents and endpoint
// descriptors used across the serializer, ldcontext and endpoint tests.
package testutil
