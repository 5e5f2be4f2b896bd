package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saltwind/grandline/api/internal/database"
)

// SurrealStore implements Store over a single SurrealDB `kv` table.
// Documents are serialized to JSON strings before storage so the stored
// shape is independent of the driver's value encoding.
type SurrealStore struct {
	db database.Database
}

// NewSurrealStore creates a Store backed by the given database.
func NewSurrealStore(db database.Database) *SurrealStore {
	return &SurrealStore{db: db}
}

// Get unmarshals the value stored under key into dest.
func (s *SurrealStore) Get(ctx context.Context, key string, dest interface{}) error {
	query := `SELECT key, data FROM type::thing('kv', $key)`
	vars := map[string]interface{}{"key": key}

	result, err := s.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	entry, err := parseEntry(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(entry.Value, dest)
}

// Set stores value under key, replacing any previous document.
func (s *SurrealStore) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	query := `
		UPSERT type::thing('kv', $key) CONTENT {
			key: $key,
			data: $data,
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"key":  key,
		"data": string(data),
	}

	return s.db.Execute(ctx, query, vars)
}

// Delete removes the value stored under key.
func (s *SurrealStore) Delete(ctx context.Context, key string) error {
	query := `DELETE type::thing('kv', $key)`
	return s.db.Execute(ctx, query, map[string]interface{}{"key": key})
}

// DeleteMany removes every given key. The store has no transactions, so a
// failure aborts the remaining deletes without undoing earlier ones.
func (s *SurrealStore) DeleteMany(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ListByPrefix returns every entry whose key starts with prefix.
func (s *SurrealStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	query := `SELECT key, data FROM kv WHERE string::starts_with(key, $prefix) ORDER BY key`
	vars := map[string]interface{}{"prefix": prefix}

	results, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		status, _ := resp["status"].(string)
		if status != "OK" {
			continue
		}
		records, ok := resp["result"].([]interface{})
		if !ok {
			continue
		}
		for _, record := range records {
			entry, err := parseEntry(record)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// parseEntry converts a kv record into an Entry.
func parseEntry(record interface{}) (Entry, error) {
	data, ok := record.(map[string]interface{})
	if !ok {
		return Entry{}, fmt.Errorf("unexpected kv record format %T", record)
	}

	key, _ := data["key"].(string)
	raw, ok := data["data"].(string)
	if !ok {
		return Entry{}, fmt.Errorf("kv record %q has no data field", key)
	}

	return Entry{Key: key, Value: json.RawMessage(raw)}, nil
}
