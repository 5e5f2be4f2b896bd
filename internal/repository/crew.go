package repository

import (
	"context"
	"fmt"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// CrewRepository stores crews under crew:{crewID} with a back-pointer
// user:crew:{userID} holding the crew id each user belongs to.
type CrewRepository struct {
	store store.Store
}

// NewCrewRepository creates a new crew repository
func NewCrewRepository(s store.Store) *CrewRepository {
	return &CrewRepository{store: s}
}

func crewKey(crewID string) string {
	return "crew:" + crewID
}

func userCrewKey(userID string) string {
	return "user:crew:" + userID
}

// Save writes the whole crew document
func (r *CrewRepository) Save(ctx context.Context, crew *model.Crew) error {
	return r.store.Set(ctx, crewKey(crew.ID), crew)
}

// Get loads one crew. Returns store.ErrNotFound when absent.
func (r *CrewRepository) Get(ctx context.Context, crewID string) (*model.Crew, error) {
	var crew model.Crew
	if err := r.store.Get(ctx, crewKey(crewID), &crew); err != nil {
		return nil, err
	}
	return &crew, nil
}

// List loads every crew
func (r *CrewRepository) List(ctx context.Context) ([]*model.Crew, error) {
	entries, err := r.store.ListByPrefix(ctx, "crew:")
	if err != nil {
		return nil, err
	}

	crews := make([]*model.Crew, 0, len(entries))
	for _, entry := range entries {
		var crew model.Crew
		if err := entry.Decode(&crew); err != nil {
			return nil, fmt.Errorf("decode %q: %w", entry.Key, err)
		}
		crews = append(crews, &crew)
	}
	return crews, nil
}

// Delete removes a crew document
func (r *CrewRepository) Delete(ctx context.Context, crewID string) error {
	return r.store.Delete(ctx, crewKey(crewID))
}

// GetUserCrewID returns the crew id the user belongs to.
// Returns store.ErrNotFound when the user is crewless.
func (r *CrewRepository) GetUserCrewID(ctx context.Context, userID string) (string, error) {
	var crewID string
	if err := r.store.Get(ctx, userCrewKey(userID), &crewID); err != nil {
		return "", err
	}
	return crewID, nil
}

// SetUserCrew records which crew the user belongs to
func (r *CrewRepository) SetUserCrew(ctx context.Context, userID, crewID string) error {
	return r.store.Set(ctx, userCrewKey(userID), crewID)
}

// ClearUserCrew removes the user's crew back-pointer
func (r *CrewRepository) ClearUserCrew(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, userCrewKey(userID))
}
