package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// CharacterRepository defines the interface for character sheet storage
type CharacterRepository interface {
	Save(ctx context.Context, character *model.Character) error
	Get(ctx context.Context, userID, characterID string) (*model.Character, error)
	List(ctx context.Context, userID string) ([]*model.Character, error)
	Delete(ctx context.Context, userID, characterID string) error
}

// CharacterService handles character sheet operations
type CharacterService struct {
	repo CharacterRepository
}

// CharacterServiceConfig holds configuration for the character service
type CharacterServiceConfig struct {
	Repo CharacterRepository
}

// NewCharacterService creates a new character service
func NewCharacterService(cfg CharacterServiceConfig) *CharacterService {
	return &CharacterService{repo: cfg.Repo}
}

// Save creates or overwrites a character sheet. Clients may supply their
// own id; without one a fresh uuid is assigned.
func (s *CharacterService) Save(ctx context.Context, userID string, character *model.Character) (*model.Character, error) {
	now := time.Now()
	character.UserID = userID
	if character.ID == "" {
		existing, err := s.repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(existing) >= model.MaxCharactersPerUser {
			return nil, ErrCharacterLimitReached
		}
		character.ID = uuid.NewString()
		character.CreatedOn = now
	} else if character.CreatedOn.IsZero() {
		// Overwrite of a sheet the client created; keep the original
		// creation time when the stored copy has one.
		if stored, err := s.repo.Get(ctx, userID, character.ID); err == nil {
			character.CreatedOn = stored.CreatedOn
			if len(character.SessionHistory) == 0 {
				character.SessionHistory = stored.SessionHistory
			}
		} else if errors.Is(err, store.ErrNotFound) {
			character.CreatedOn = now
		} else {
			return nil, err
		}
	}
	character.UpdatedOn = now

	if err := s.repo.Save(ctx, character); err != nil {
		return nil, err
	}
	return character, nil
}

// List returns every character owned by the user
func (s *CharacterService) List(ctx context.Context, userID string) ([]*model.Character, error) {
	return s.repo.List(ctx, userID)
}

// Get returns one character owned by the user
func (s *CharacterService) Get(ctx context.Context, userID, characterID string) (*model.Character, error) {
	character, err := s.repo.Get(ctx, userID, characterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return character, nil
}

// Delete removes one character owned by the user
func (s *CharacterService) Delete(ctx context.Context, userID, characterID string) error {
	return s.repo.Delete(ctx, userID, characterID)
}
