package repository

import (
	"context"
	"fmt"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// CharacterRepository stores character sheets as whole documents under
// user:characters:{userID}:{characterID}.
type CharacterRepository struct {
	store store.Store
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(s store.Store) *CharacterRepository {
	return &CharacterRepository{store: s}
}

func characterKey(userID, characterID string) string {
	return fmt.Sprintf("user:characters:%s:%s", userID, characterID)
}

func characterPrefix(userID string) string {
	return fmt.Sprintf("user:characters:%s:", userID)
}

// Save writes the whole character document
func (r *CharacterRepository) Save(ctx context.Context, character *model.Character) error {
	return r.store.Set(ctx, characterKey(character.UserID, character.ID), character)
}

// Get loads one character owned by the given user.
// Returns store.ErrNotFound when absent.
func (r *CharacterRepository) Get(ctx context.Context, userID, characterID string) (*model.Character, error) {
	var character model.Character
	if err := r.store.Get(ctx, characterKey(userID, characterID), &character); err != nil {
		return nil, err
	}
	return &character, nil
}

// List loads every character owned by the given user
func (r *CharacterRepository) List(ctx context.Context, userID string) ([]*model.Character, error) {
	entries, err := r.store.ListByPrefix(ctx, characterPrefix(userID))
	if err != nil {
		return nil, err
	}

	characters := make([]*model.Character, 0, len(entries))
	for _, entry := range entries {
		var character model.Character
		if err := entry.Decode(&character); err != nil {
			return nil, fmt.Errorf("decode %q: %w", entry.Key, err)
		}
		characters = append(characters, &character)
	}
	return characters, nil
}

// Delete removes one character owned by the given user
func (r *CharacterRepository) Delete(ctx context.Context, userID, characterID string) error {
	return r.store.Delete(ctx, characterKey(userID, characterID))
}
