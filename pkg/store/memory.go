package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Record
	byHash map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]*Record),
		byHash: make(map[string]string),
	}
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byHash[rec.Hash]; ok {
		*rec = *s.byID[id]
		return nil
	}
	stored := *rec
	s.byID[rec.ID] = &stored
	s.byHash[rec.Hash] = rec.ID
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, notFound(id)
	}
	out := *rec
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	recs := make([]*Record, 0, len(s.byID))
	for _, rec := range s.byID {
		recs = append(recs, rec.Summary())
	}
	s.mu.RUnlock()

	return newestFirst(recs, limit), nil
}

func (s *MemoryStore) Close() error { return nil }

// newestFirst sorts recs by creation time, breaking ties by ID, and applies
// limit.
func newestFirst(recs []*Record, limit int) []*Record {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID < recs[j].ID
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

var _ Store = (*MemoryStore)(nil)
