package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/saltwind/grandline/api/internal/dice"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// SessionRepository defines the interface for session document storage
type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	List(ctx context.Context) ([]*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionService drives the live session engine. Every mutation follows
// the same shape: load the document (or start from fresh defaults),
// apply one state transition, write the whole document back. Concurrent
// writers are last-write-wins.
type SessionService struct {
	repo   SessionRepository
	roller dice.Roller
}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	Repo   SessionRepository
	Roller dice.Roller
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	roller := cfg.Roller
	if roller == nil {
		roller = dice.New()
	}
	return &SessionService{
		repo:   cfg.Repo,
		roller: roller,
	}
}

// Load returns the stored session, or fresh defaults when none exists.
// A session that was never saved is indistinguishable from an empty one;
// reading it is never an error.
func (s *SessionService) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.NewSession(sessionID, "", time.Now()), nil
		}
		return nil, err
	}
	return session, nil
}

// Overwrite replaces the whole session document with client state. This
// is the polling client's save path; the path id wins over any id in the
// payload.
func (s *SessionService) Overwrite(ctx context.Context, sessionID string, session *model.Session) error {
	session.ID = sessionID
	session.UpdatedOn = time.Now()
	if session.Round < 1 {
		session.Round = 1
	}
	if session.Players == nil {
		session.Players = []model.Player{}
	}
	if session.Enemies == nil {
		session.Enemies = []model.Enemy{}
	}
	if session.Notes == nil {
		session.Notes = []model.SessionNote{}
	}
	return s.repo.Save(ctx, session)
}

// mutate loads the session, applies fn, and persists the result
func (s *SessionService) mutate(ctx context.Context, sessionID string, fn func(*model.Session) error) (*model.Session, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	session.UpdatedOn = time.Now()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddPlayer adds a player with default stats
func (s *SessionService) AddPlayer(ctx context.Context, sessionID, name string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		session.AddPlayer(strings.TrimSpace(name))
		return nil
	})
}

// UpdatePlayer merges partial fields into one player
func (s *SessionService) UpdatePlayer(ctx context.Context, sessionID, playerID string, update model.PlayerUpdate) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		if !session.UpdatePlayer(playerID, update) {
			return ErrCombatantNotFound
		}
		return nil
	})
}

// RemovePlayer drops one player from the roster
func (s *SessionService) RemovePlayer(ctx context.Context, sessionID, playerID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		if !session.RemovePlayer(playerID) {
			return ErrCombatantNotFound
		}
		return nil
	})
}

// AddEnemy adds an enemy with default stats
func (s *SessionService) AddEnemy(ctx context.Context, sessionID, name string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		session.AddEnemy(strings.TrimSpace(name))
		return nil
	})
}

// UpdateEnemy merges partial fields into one enemy
func (s *SessionService) UpdateEnemy(ctx context.Context, sessionID, enemyID string, update model.EnemyUpdate) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		if !session.UpdateEnemy(enemyID, update) {
			return ErrCombatantNotFound
		}
		return nil
	})
}

// RemoveEnemy drops one enemy from the roster
func (s *SessionService) RemoveEnemy(ctx context.Context, sessionID, enemyID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		if !session.RemoveEnemy(enemyID) {
			return ErrCombatantNotFound
		}
		return nil
	})
}

// SortInitiative orders both rosters by descending initiative and resets
// the turn pointer
func (s *SessionService) SortInitiative(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		session.SortByInitiative()
		return nil
	})
}

// AdvanceTurn moves to the next combatant, rolling the round over at the
// end of the order. With no combatants the session is left untouched.
func (s *SessionService) AdvanceTurn(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.AdvanceTurn(time.Now()) {
		return session, nil
	}

	session.UpdatedOn = time.Now()
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Roll rolls a die, records the result on the session, and logs it
func (s *SessionService) Roll(ctx context.Context, sessionID string, sides int) (*model.Session, int, error) {
	result, err := s.roller.Roll(sides)
	if err != nil {
		return nil, 0, ErrInvalidDie
	}

	session, err := s.mutate(ctx, sessionID, func(session *model.Session) error {
		session.RecordRoll(sides, result, time.Now())
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return session, result, nil
}

// AddNote prepends a manual note to the session log
func (s *SessionService) AddNote(ctx context.Context, sessionID, text string) (*model.Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoteTextRequired
	}
	return s.mutate(ctx, sessionID, func(session *model.Session) error {
		session.AddNote(text, time.Now())
		return nil
	})
}

// DeleteStale removes sessions untouched for longer than retention.
// Returns how many were deleted; a failed delete aborts the sweep.
func (s *SessionService) DeleteStale(ctx context.Context, retention time.Duration) (int, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, session := range sessions {
		if session.UpdatedOn.After(cutoff) {
			continue
		}
		if err := s.repo.Delete(ctx, session.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
