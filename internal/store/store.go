// Package store provides the generic per-key persistence layer backing all
// domain aggregates (characters, crews, sessions, forum content).
//
// Every value is stored as a whole JSON document under a string key. The
// contract is deliberately minimal: get, set, delete, multi-delete, and a
// prefix scan. There is no partial update and no compare-and-swap; writes
// are last-write-wins.
//
// Key layout in use:
//
//	user:characters:{userID}:{characterID}
//	crew:{crewID}
//	user:crew:{userID}
//	session:{sessionID}
//	forum:post:{postID}
//	forum:comment:{commentID}
//	forum:like:{postID}:{userID}
//	auth:refresh:{tokenHash}
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound indicates no value is stored under the requested key.
var ErrNotFound = errors.New("key not found")

// Entry is a key together with its raw stored document.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Decode unmarshals the entry's document into dest.
func (e Entry) Decode(dest interface{}) error {
	return json.Unmarshal(e.Value, dest)
}

// Store is a generic key → JSON document mapping.
type Store interface {
	// Get unmarshals the value stored under key into dest.
	// Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key, replacing any previous document.
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes the value stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMany removes every given key. Not atomic: a failure aborts
	// the remaining deletes without undoing earlier ones.
	DeleteMany(ctx context.Context, keys []string) error

	// ListByPrefix returns every entry whose key starts with prefix,
	// ordered by key.
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
