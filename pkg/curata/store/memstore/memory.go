package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/curata-io/curata/pkg/curata/chunk"
	"github.com/curata-io/curata/pkg/curata/internalerr"
	"github.com/curata-io/curata/pkg/curata/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.Record
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]store.Record),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecord inserts or replaces a record, keyed by package name.
func (s *Store) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Name == "" {
		return fmt.Errorf("%w: record name is required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[r.Name] = copyRecord(r)
	return nil
}

// GetRecord fetches a record by package name.
func (s *Store) GetRecord(ctx context.Context, name string) (store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[name]
	if !ok {
		return store.Record{}, fmt.Errorf("%w: record %q", internalerr.ErrNotFound, name)
	}
	return copyRecord(r), nil
}

// GetRecordsByTag returns records carrying the given tag, ordered by name.
func (s *Store) GetRecordsByTag(ctx context.Context, tag string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []store.Record
	for _, r := range s.records {
		for _, t := range r.Tags {
			if t == tag {
				matched = append(matched, copyRecord(r))
				break
			}
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// ListNames returns all stored package names, sorted.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

func copyRecord(r store.Record) store.Record {
	out := r
	out.Tags = append([]string(nil), r.Tags...)
	out.Chunks = append([]chunk.Chunk(nil), r.Chunks...)
	return out
}
