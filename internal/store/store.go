// Package store persists per-carnival event aggregates in a document store
// keyed by carnival ID.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/carnivalplanner/carnival-scraper/internal/event"
)

// CarnivalDoc is the aggregate document written once per region per run.
// The events array holds the current run's snapshot for that region; writes
// are document-level merges, so regions absent from a run keep their prior
// events.
type CarnivalDoc struct {
	CarnivalID    string        `bson:"carnivalId" json:"carnivalId"`
	LastScrapedAt string        `bson:"lastScrapedAt" json:"lastScrapedAt"`
	EventCount    int           `bson:"eventCount" json:"eventCount"`
	Events        []event.Event `bson:"events" json:"events"`
	Sources       []string      `bson:"sources" json:"sources"`
}

// Store is the document-store contract the pipeline writes through.
type Store interface {
	// UpsertCarnival merges a region aggregate into storage. Top-level
	// fields not named by the document are preserved; the events array is
	// replaced wholesale.
	UpsertCarnival(ctx context.Context, doc CarnivalDoc) error

	// AllCarnivals returns every stored region aggregate.
	AllCarnivals(ctx context.Context) ([]CarnivalDoc, error)
}

// Memory is an in-process Store used by tests and dry runs.
type Memory struct {
	mu   sync.Mutex
	docs map[string]CarnivalDoc
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]CarnivalDoc)}
}

// UpsertCarnival implements Store.
func (m *Memory) UpsertCarnival(_ context.Context, doc CarnivalDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.CarnivalID] = doc
	return nil
}

// AllCarnivals implements Store. Results are ordered by carnival ID for
// stable output.
func (m *Memory) AllCarnivals(_ context.Context) ([]CarnivalDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]CarnivalDoc, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CarnivalID < docs[j].CarnivalID })
	return docs, nil
}
