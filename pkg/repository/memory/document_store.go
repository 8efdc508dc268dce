package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
)

// DocumentStore is an in-memory stand-in for the remote document database
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[int64]document.Document
}

var _ interfaces.DocumentStore = &DocumentStore{}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[int64]document.Document),
	}
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	ids := slices.SortedFunc(maps.Keys(docs), cmp.Compare[int64])
	result := make([]document.Document, 0, len(ids))
	for _, id := range ids {
		result = append(result, maps.Clone(docs[id]))
	}
	return result, nil
}

func (s *DocumentStore) Set(ctx context.Context, collection string, id int64, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = make(map[int64]document.Document)
	}
	s.collections[collection][id] = maps.Clone(doc)
	return nil
}

func (s *DocumentStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.collections[collection])
	delete(s.collections, collection)
	return n, nil
}

func (s *DocumentStore) Close() error {
	return nil
}
