package repository

import (
	"context"
	"fmt"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// SessionRepository stores live session state as whole documents under
// session:{sessionID}. Every mutation overwrites the full document;
// concurrent writers are last-write-wins.
type SessionRepository struct {
	store store.Store
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Save writes the whole session document
func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	return r.store.Set(ctx, sessionKey(session.ID), session)
}

// Get loads one session. Returns store.ErrNotFound when absent.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	if err := r.store.Get(ctx, sessionKey(sessionID), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// List loads every stored session
func (r *SessionRepository) List(ctx context.Context) ([]*model.Session, error) {
	entries, err := r.store.ListByPrefix(ctx, "session:")
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(entries))
	for _, entry := range entries {
		var session model.Session
		if err := entry.Decode(&session); err != nil {
			return nil, fmt.Errorf("decode %q: %w", entry.Key, err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// Delete removes a session document
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionKey(sessionID))
}
