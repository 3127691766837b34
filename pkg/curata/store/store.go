package store

import (
	"context"
	"time"

	"github.com/curata-io/curata/pkg/curata/chunk"
)

// Store persists curated package records
type Store interface {
	Close() error

	UpsertRecord(ctx context.Context, r Record) error
	GetRecord(ctx context.Context, name string) (Record, error)
	GetRecordsByTag(ctx context.Context, tag string, limit int) ([]Record, error)
	ListNames(ctx context.Context) ([]string, error)
	CountRecords(ctx context.Context) (int64, error)
}

// Record is the persisted per-package curation result: identity,
// summary, tag set, and the ordered chunk list. Chunks are never
// reordered or mixed across packages.
type Record struct {
	ID        string
	Name      string
	Summary   string
	Language  string
	Tags      []string
	Chunks    []chunk.Chunk
	CreatedAt time.Time
}
