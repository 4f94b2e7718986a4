package testutil

import (
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"

	"github.com/MohamedSadiq102/context.Orion-LD/tree"
)

// MockLoader is an in-memory ld.DocumentLoader. Documents are keyed by URL.
// It is safe for concurrent use and records every call for verification.
type MockLoader struct {
	mu    sync.Mutex
	docs  map[string]any
	calls map[string]int

	// Gate, when set, is received from before every load. Tests use it to
	// hold loads in flight.
	Gate chan struct{}
}

// NewMockLoader creates an empty loader.
func NewMockLoader() *MockLoader {
	return &MockLoader{
		docs:  make(map[string]any),
		calls: make(map[string]int),
	}
}

// Put stores a parsed JSON document under url.
func (l *MockLoader) Put(url string, doc any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[url] = doc
}

// PutJSON parses raw in document order and stores it under url. It panics
// on malformed JSON.
func (l *MockLoader) PutJSON(url, raw string) {
	doc, err := tree.Parse([]byte(raw))
	if err != nil {
		panic(fmt.Sprintf("mock loader: %s: %v", url, err))
	}
	l.Put(url, doc)
}

// LoadDocument implements ld.DocumentLoader.
func (l *MockLoader) LoadDocument(url string) (*ld.RemoteDocument, error) {
	if l.Gate != nil {
		<-l.Gate
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls[url]++
	doc, ok := l.docs[url]
	if !ok {
		return nil, fmt.Errorf("mock loader: no document at %s", url)
	}
	return &ld.RemoteDocument{DocumentURL: url, Document: doc}, nil
}

// Calls returns how many times url was loaded.
func (l *MockLoader) Calls(url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[url]
}

// TotalCalls returns the number of loads across all URLs.
func (l *MockLoader) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, n := range l.calls {
		total += n
	}
	return total
}
