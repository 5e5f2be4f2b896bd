package store

import (
	"context"
	"errors"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_SetGet(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "crew:1", testDoc{Name: "Straw Hats", Count: 8}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got testDoc
	if err := s.Get(ctx, "crew:1", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Straw Hats" || got.Count != 8 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()

	var got testDoc
	err := s.Get(context.Background(), "crew:missing", &got)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", testDoc{Count: 1})
	_ = s.Set(ctx, "k", testDoc{Count: 2})

	var got testDoc
	if err := s.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("expected last write to win, got count %d", got.Count)
	}
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", testDoc{})
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting absent key should not error, got %v", err)
	}
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "user:characters:u1:b", testDoc{Name: "Brook"})
	_ = s.Set(ctx, "user:characters:u1:a", testDoc{Name: "Ace"})
	_ = s.Set(ctx, "user:characters:u2:c", testDoc{Name: "Crocus"})

	entries, err := s.ListByPrefix(ctx, "user:characters:u1:")
	if err != nil {
		t.Fatalf("ListByPrefix: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "user:characters:u1:a" || entries[1].Key != "user:characters:u1:b" {
		t.Errorf("expected key-ordered entries, got %q, %q", entries[0].Key, entries[1].Key)
	}

	var doc testDoc
	if err := entries[0].Decode(&doc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Name != "Ace" {
		t.Errorf("decoded wrong document: %+v", doc)
	}
}

func TestMemoryStore_DeleteMany(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "a", testDoc{})
	_ = s.Set(ctx, "b", testDoc{})
	_ = s.Set(ctx, "c", testDoc{})

	if err := s.DeleteMany(ctx, []string{"a", "c", "nope"}); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 remaining key, got %d", s.Len())
	}
}
