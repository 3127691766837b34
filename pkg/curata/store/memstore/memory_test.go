package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/curata-io/curata/pkg/curata/chunk"
	"github.com/curata-io/curata/pkg/curata/internalerr"
	"github.com/curata-io/curata/pkg/curata/store"
)

func TestUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := New()

	rec := store.Record{
		Name:     "plotkit",
		Summary:  "Plotting for dataframes",
		Language: "python",
		Tags:     []string{"visualization"},
		Chunks:   []chunk.Chunk{{Index: 0, Body: "body", WordCount: 1}},
	}

	if err := s.UpsertRecord(ctx, rec); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	got, err := s.GetRecord(ctx, "plotkit")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got.Summary != rec.Summary {
		t.Errorf("summary mismatch: %q", got.Summary)
	}

	// Mutating the returned record must not affect the stored copy
	got.Tags[0] = "mutated"
	again, _ := s.GetRecord(ctx, "plotkit")
	if again.Tags[0] != "visualization" {
		t.Error("store returned a shared slice")
	}
}

func TestGetMissing(t *testing.T) {
	s := New()

	_, err := s.GetRecord(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertRequiresName(t *testing.T) {
	s := New()

	err := s.UpsertRecord(context.Background(), store.Record{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetRecordsByTag(t *testing.T) {
	ctx := context.Background()
	s := New()

	records := []store.Record{
		{Name: "beta", Tags: []string{"web", "data"}},
		{Name: "alpha", Tags: []string{"web"}},
		{Name: "gamma", Tags: []string{"ml"}},
	}
	for _, r := range records {
		if err := s.UpsertRecord(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	web, err := s.GetRecordsByTag(ctx, "web", 10)
	if err != nil {
		t.Fatalf("GetRecordsByTag: %v", err)
	}
	if len(web) != 2 || web[0].Name != "alpha" || web[1].Name != "beta" {
		t.Errorf("unexpected web records: %+v", web)
	}

	n, err := s.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("CountRecords = %d, want 3", n)
	}
}
