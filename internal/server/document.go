package server

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// document is an open text document. Documents are immutable; an edit
// replaces the document in its store.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	text    string

	// path is the file path of a file URI, or empty.
	path string

	// isSchema reports whether the document overrides a schema file of the
	// project.
	isSchema bool
}

// documentStore holds the open documents of a session, bounded in number.
type documentStore struct {
	mu    sync.Mutex
	size  int
	cache *lru.Cache[protocol.DocumentUri, *document]
}

func newDocumentStore(size int) (*documentStore, error) {
	cache, err := lru.New[protocol.DocumentUri, *document](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}
	return &documentStore{size: size, cache: cache}, nil
}

func (ds *documentStore) get(uri protocol.DocumentUri) (*document, bool) {
	return ds.cache.Get(uri)
}

// put stores doc. When the store is full and doc is new, the least recently
// used document is dropped and returned.
func (ds *documentStore) put(doc *document) (evicted *document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if !ds.cache.Contains(doc.uri) && ds.cache.Len() >= ds.size {
		_, evicted, _ = ds.cache.RemoveOldest()
	}
	ds.cache.Add(doc.uri, doc)
	return evicted
}

func (ds *documentStore) remove(uri protocol.DocumentUri) (*document, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	doc, ok := ds.cache.Peek(uri)
	if ok {
		ds.cache.Remove(uri)
	}
	return doc, ok
}

func (ds *documentStore) len() int {
	return ds.cache.Len()
}

// clear removes and returns every document.
func (ds *documentStore) clear() []*document {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	docs := ds.cache.Values()
	ds.cache.Purge()
	return docs
}
