package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ContextServer serves static JSON-LD documents and counts requests per path.
type ContextServer struct {
	*httptest.Server

	mu   sync.Mutex
	docs map[string]string
	hits map[string]int
}

// NewContextServer starts a server that answers GET path with docs[path] as
// application/ld+json, and 404 otherwise. It is closed when the test ends.
func NewContextServer(t *testing.T, docs map[string]string) *ContextServer {
	t.Helper()

	cs := &ContextServer{
		docs: make(map[string]string, len(docs)),
		hits: make(map[string]int),
	}
	for path, body := range docs {
		cs.docs[path] = body
	}

	cs.Server = httptest.NewServer(http.HandlerFunc(cs.serve))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *ContextServer) serve(w http.ResponseWriter, r *http.Request) {
	cs.mu.Lock()
	cs.hits[r.URL.Path]++
	body, ok := cs.docs[r.URL.Path]
	cs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/ld+json")
	_, _ = w.Write([]byte(body))
}

// URLFor returns the absolute URL of path on this server.
func (cs *ContextServer) URLFor(path string) string {
	return cs.URL + path
}

// Hits returns the number of requests received for path.
func (cs *ContextServer) Hits(path string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.hits[path]
}
