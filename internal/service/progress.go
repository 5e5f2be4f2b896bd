package service

import (
	"context"
	"time"

	"github.com/saltwind/grandline/api/internal/model"
)

// ProgressService folds a session's narrative outcome into the caller's
// character sheets.
type ProgressService struct {
	characterRepo CharacterRepository
}

// ProgressServiceConfig holds configuration for the progress service
type ProgressServiceConfig struct {
	CharacterRepo CharacterRepository
}

// NewProgressService creates a new progress service
func NewProgressService(cfg ProgressServiceConfig) *ProgressService {
	return &ProgressService{characterRepo: cfg.CharacterRepo}
}

// SaveProgress appends one session history entry to each of the caller's
// characters matched by the player list, and grants XP when positive.
//
// Matching prefers an explicit character id on the player entry and
// falls back to an exact name match for legacy clients. Unmatched
// players are skipped silently. Updates are applied one character at a
// time; a storage failure aborts the loop without undoing earlier
// writes, and the count of successful updates is returned either way.
func (s *ProgressService) SaveProgress(ctx context.Context, userID, sessionID string, req model.SaveProgressRequest) (int, error) {
	characters, err := s.characterRepo.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	entry := model.SessionHistoryEntry{
		SessionID:     sessionID,
		SessionDate:   time.Now(),
		StoryProgress: req.StoryProgress,
		Notes:         req.SessionNotes,
		XPGained:      req.XPAwarded,
		ItemsObtained: req.ItemsObtained,
	}
	if entry.ItemsObtained == nil {
		entry.ItemsObtained = model.StringList{}
	}

	updated := 0
	seen := make(map[string]bool)
	for _, player := range req.Players {
		character := matchCharacter(characters, player)
		if character == nil || seen[character.ID] {
			continue
		}
		seen[character.ID] = true

		character.SessionHistory = append(character.SessionHistory, entry)
		if req.XPAwarded > 0 {
			character.Experience += req.XPAwarded
		}
		character.UpdatedOn = entry.SessionDate

		if err := s.characterRepo.Save(ctx, character); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// matchCharacter finds the sheet a player entry refers to. An explicit
// character id wins; name matching is the legacy path.
func matchCharacter(characters []*model.Character, player model.ProgressPlayer) *model.Character {
	if player.CharacterID != "" {
		for _, c := range characters {
			if c.ID == player.CharacterID {
				return c
			}
		}
		return nil
	}
	if player.Name == "" {
		return nil
	}
	for _, c := range characters {
		if c.Name == player.Name {
			return c
		}
	}
	return nil
}
