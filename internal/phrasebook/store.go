package phrasebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// CurrentVersion is the schema tag written with every new document
const CurrentVersion = 3

// ErrNotFound is returned when no document has the requested id
var ErrNotFound = errors.New("phrasebook entry not found")

// ErrUnsupportedVersion marks documents written by a newer schema
var ErrUnsupportedVersion = errors.New("unsupported phrasebook version")

// Document is one saved result
type Document struct {
	ID                string          `json:"_id"`
	Data              json.RawMessage `json:"data"`
	PhrasebookVersion int             `json:"phrasebookVersion"`
}

// Validate rejects documents written by a newer schema
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("phrasebook entry has no id")
	}
	if d.PhrasebookVersion > CurrentVersion {
		return fmt.Errorf("phrasebook entry %s has version %d: %w", d.ID, d.PhrasebookVersion, ErrUnsupportedVersion)
	}
	return nil
}

// Store is a key-value document store for phrasebook entries
type Store interface {
	Put(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Remove(ctx context.Context, id string) error
	// List returns all readable entries, newest first
	List(ctx context.Context) ([]*Document, error)
	Close() error
}

// MemoryStore keeps entries in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Put stores a copy of doc, replacing any entry with the same id
func (m *MemoryStore) Put(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[doc.ID] = copyDocument(doc)
	m.mu.Unlock()
	return nil
}

// Get returns the entry with the given id
func (m *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc), nil
}

// Remove deletes the entry with the given id
func (m *MemoryStore) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// List returns all entries, newest first
func (m *MemoryStore) List(ctx context.Context) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]*Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, copyDocument(doc))
	}
	sortNewestFirst(docs)
	return docs, nil
}

// Len returns the number of stored entries
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

func copyDocument(doc *Document) *Document {
	c := *doc
	c.Data = append(json.RawMessage(nil), doc.Data...)
	return &c
}

// Ids are ISO-8601 UTC timestamps, so lexical order is chronological
func sortNewestFirst(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID > docs[j].ID
	})
}
