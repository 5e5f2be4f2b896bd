package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// CrewRepository defines the interface for crew storage
type CrewRepository interface {
	Save(ctx context.Context, crew *model.Crew) error
	Get(ctx context.Context, crewID string) (*model.Crew, error)
	List(ctx context.Context) ([]*model.Crew, error)
	Delete(ctx context.Context, crewID string) error
	GetUserCrewID(ctx context.Context, userID string) (string, error)
	SetUserCrew(ctx context.Context, userID, crewID string) error
	ClearUserCrew(ctx context.Context, userID string) error
}

// CrewService handles crew membership and session kickoff
type CrewService struct {
	repo        CrewRepository
	sessionRepo SessionRepository
}

// CrewServiceConfig holds configuration for the crew service
type CrewServiceConfig struct {
	Repo        CrewRepository
	SessionRepo SessionRepository
}

// NewCrewService creates a new crew service
func NewCrewService(cfg CrewServiceConfig) *CrewService {
	return &CrewService{
		repo:        cfg.Repo,
		sessionRepo: cfg.SessionRepo,
	}
}

// Create founds a crew with the caller as captain
func (s *CrewService) Create(ctx context.Context, userID, userName string, req model.CreateCrewRequest) (*model.Crew, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCrewNameRequired
	}

	now := time.Now()
	crew := &model.Crew{
		ID:        uuid.NewString(),
		Name:      name,
		CaptainID: userID,
		Members: []model.CrewMember{{
			ID:            userID,
			Name:          userName,
			CharacterName: strings.TrimSpace(req.CharacterName),
			CharacterID:   req.CharacterID,
			Role:          model.CrewRoleCaptain,
		}},
		MaxMembers: model.MaxCrewMembers,
		IsActive:   true,
		CreatedOn:  now,
		UpdatedOn:  now,
	}

	if err := s.repo.Save(ctx, crew); err != nil {
		return nil, err
	}
	if err := s.repo.SetUserCrew(ctx, userID, crew.ID); err != nil {
		return nil, err
	}
	return crew, nil
}

// List returns every crew
func (s *CrewService) List(ctx context.Context) ([]*model.Crew, error) {
	return s.repo.List(ctx)
}

// Get returns one crew
func (s *CrewService) Get(ctx context.Context, crewID string) (*model.Crew, error) {
	crew, err := s.repo.Get(ctx, crewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return crew, nil
}

// MyCrew returns the caller's crew, or nil when they have none.
// Being crewless is not an error.
func (s *CrewService) MyCrew(ctx context.Context, userID string) (*model.Crew, error) {
	crewID, err := s.repo.GetUserCrewID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	crew, err := s.repo.Get(ctx, crewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Stale back-pointer; the crew dissolved underneath it.
			_ = s.repo.ClearUserCrew(ctx, userID)
			return nil, nil
		}
		return nil, err
	}
	return crew, nil
}

// Join adds the caller to an existing crew
func (s *CrewService) Join(ctx context.Context, crewID, userID, userName string, req model.JoinCrewRequest) (*model.Crew, error) {
	crew, err := s.Get(ctx, crewID)
	if err != nil {
		return nil, err
	}

	if crew.HasMember(userID) {
		return nil, ErrAlreadyCrewMember
	}
	if crew.IsFull() {
		return nil, ErrCrewFull
	}

	crew.Members = append(crew.Members, model.CrewMember{
		ID:            userID,
		Name:          userName,
		CharacterName: strings.TrimSpace(req.CharacterName),
		CharacterID:   req.CharacterID,
		Role:          model.CrewRoleMember,
	})
	crew.UpdatedOn = time.Now()

	if err := s.repo.Save(ctx, crew); err != nil {
		return nil, err
	}
	if err := s.repo.SetUserCrew(ctx, userID, crew.ID); err != nil {
		return nil, err
	}
	return crew, nil
}

// Leave removes the caller from their crew. The last member leaving
// dissolves the crew.
func (s *CrewService) Leave(ctx context.Context, crewID, userID string) error {
	crew, err := s.Get(ctx, crewID)
	if err != nil {
		return err
	}

	if !crew.RemoveMember(userID) {
		return ErrNotCrewMember
	}

	if len(crew.Members) == 0 {
		if err := s.repo.Delete(ctx, crewID); err != nil {
			return err
		}
	} else {
		crew.UpdatedOn = time.Now()
		if err := s.repo.Save(ctx, crew); err != nil {
			return err
		}
	}

	return s.repo.ClearUserCrew(ctx, userID)
}

// StartSession creates a session seeded from the crew roster. Only the
// captain may start one; every member becomes a player with default
// combat stats.
func (s *CrewService) StartSession(ctx context.Context, crewID, userID string) (string, error) {
	crew, err := s.Get(ctx, crewID)
	if err != nil {
		return "", err
	}

	if crew.CaptainID != userID {
		return "", ErrNotCaptain
	}

	now := time.Now()
	session := model.NewSession(uuid.NewString(), crew.ID, now)
	for _, member := range crew.Members {
		name := member.CharacterName
		if name == "" {
			name = member.Name
		}
		player := session.AddPlayer(name)
		player.CharacterID = member.CharacterID
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return "", err
	}

	crew.SessionID = session.ID
	crew.UpdatedOn = now
	if err := s.repo.Save(ctx, crew); err != nil {
		return "", err
	}
	return session.ID, nil
}
