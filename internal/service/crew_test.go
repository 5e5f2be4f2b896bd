package service

import (
	"context"
	"errors"
	"testing"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// mockCrewRepo implements CrewRepository with function fields
type mockCrewRepo struct {
	saveFunc          func(ctx context.Context, crew *model.Crew) error
	getFunc           func(ctx context.Context, crewID string) (*model.Crew, error)
	listFunc          func(ctx context.Context) ([]*model.Crew, error)
	deleteFunc        func(ctx context.Context, crewID string) error
	getUserCrewIDFunc func(ctx context.Context, userID string) (string, error)
	setUserCrewFunc   func(ctx context.Context, userID, crewID string) error
	clearUserCrewFunc func(ctx context.Context, userID string) error
}

func (m *mockCrewRepo) Save(ctx context.Context, crew *model.Crew) error {
	return m.saveFunc(ctx, crew)
}

func (m *mockCrewRepo) Get(ctx context.Context, crewID string) (*model.Crew, error) {
	return m.getFunc(ctx, crewID)
}

func (m *mockCrewRepo) List(ctx context.Context) ([]*model.Crew, error) {
	return m.listFunc(ctx)
}

func (m *mockCrewRepo) Delete(ctx context.Context, crewID string) error {
	return m.deleteFunc(ctx, crewID)
}

func (m *mockCrewRepo) GetUserCrewID(ctx context.Context, userID string) (string, error) {
	return m.getUserCrewIDFunc(ctx, userID)
}

func (m *mockCrewRepo) SetUserCrew(ctx context.Context, userID, crewID string) error {
	return m.setUserCrewFunc(ctx, userID, crewID)
}

func (m *mockCrewRepo) ClearUserCrew(ctx context.Context, userID string) error {
	return m.clearUserCrewFunc(ctx, userID)
}

func testCrew(captainID string, memberIDs ...string) *model.Crew {
	crew := &model.Crew{
		ID:        "crew1",
		Name:      "Straw Hats",
		CaptainID: captainID,
		Members: []model.CrewMember{{
			ID:   captainID,
			Name: "Captain",
			Role: model.CrewRoleCaptain,
		}},
		MaxMembers: model.MaxCrewMembers,
		IsActive:   true,
	}
	for _, id := range memberIDs {
		crew.Members = append(crew.Members, model.CrewMember{
			ID:   id,
			Name: "Member " + id,
			Role: model.CrewRoleMember,
		})
	}
	return crew
}

func TestCrewCreate_RequiresName(t *testing.T) {
	t.Parallel()
	svc := NewCrewService(CrewServiceConfig{})

	_, err := svc.Create(context.Background(), "u1", "Luffy", model.CreateCrewRequest{Name: "  "})
	if !errors.Is(err, ErrCrewNameRequired) {
		t.Errorf("expected ErrCrewNameRequired, got %v", err)
	}
}

func TestCrewCreate_CallerIsCaptain(t *testing.T) {
	t.Parallel()
	var savedCrew *model.Crew
	var pointerCrewID string
	repo := &mockCrewRepo{
		saveFunc: func(ctx context.Context, crew *model.Crew) error {
			savedCrew = crew
			return nil
		},
		setUserCrewFunc: func(ctx context.Context, userID, crewID string) error {
			pointerCrewID = crewID
			return nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	crew, err := svc.Create(context.Background(), "u1", "Luffy", model.CreateCrewRequest{
		Name:          "Straw Hats",
		CharacterName: "Monkey D. Luffy",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if crew.CaptainID != "u1" {
		t.Errorf("caller is not captain: %+v", crew)
	}
	if len(crew.Members) != 1 || crew.Members[0].Role != model.CrewRoleCaptain {
		t.Errorf("captain not in roster: %+v", crew.Members)
	}
	if crew.MaxMembers != model.MaxCrewMembers {
		t.Errorf("expected max %d members, got %d", model.MaxCrewMembers, crew.MaxMembers)
	}
	if savedCrew == nil || pointerCrewID != crew.ID {
		t.Error("crew or back-pointer not persisted")
	}
}

func TestCrewJoin_Full(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap", "m1", "m2", "m3", "m4", "m5", "m6", "m7")
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	_, err := svc.Join(context.Background(), "crew1", "u9", "Nine", model.JoinCrewRequest{})
	if !errors.Is(err, ErrCrewFull) {
		t.Errorf("expected ErrCrewFull, got %v", err)
	}
}

func TestCrewJoin_AlreadyAboard(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap", "m1")
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	_, err := svc.Join(context.Background(), "crew1", "m1", "One", model.JoinCrewRequest{})
	if !errors.Is(err, ErrAlreadyCrewMember) {
		t.Errorf("expected ErrAlreadyCrewMember, got %v", err)
	}
}

func TestCrewJoin_NotFound(t *testing.T) {
	t.Parallel()
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return nil, store.ErrNotFound
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	_, err := svc.Join(context.Background(), "missing", "u1", "Luffy", model.JoinCrewRequest{})
	if !errors.Is(err, ErrCrewNotFound) {
		t.Errorf("expected ErrCrewNotFound, got %v", err)
	}
}

func TestCrewLeave_LastMemberDissolvesCrew(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap")
	deleted := false
	cleared := false
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
		deleteFunc: func(ctx context.Context, crewID string) error {
			deleted = true
			return nil
		},
		clearUserCrewFunc: func(ctx context.Context, userID string) error {
			cleared = true
			return nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	if err := svc.Leave(context.Background(), "crew1", "cap"); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if !deleted {
		t.Error("empty crew not dissolved")
	}
	if !cleared {
		t.Error("back-pointer not cleared")
	}
}

func TestCrewLeave_NonMember(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap", "m1")
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
		saveFunc: func(ctx context.Context, c *model.Crew) error {
			t.Error("crew saved for a non-member leave")
			return nil
		},
		clearUserCrewFunc: func(ctx context.Context, userID string) error {
			t.Error("back-pointer cleared for a non-member leave")
			return nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	err := svc.Leave(context.Background(), "crew1", "stranger")
	if !errors.Is(err, ErrNotCrewMember) {
		t.Errorf("expected ErrNotCrewMember, got %v", err)
	}
	if len(crew.Members) != 2 {
		t.Errorf("roster changed: %+v", crew.Members)
	}
}

func TestCrewStartSession_CaptainOnly(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap", "m1")
	repo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	_, err := svc.StartSession(context.Background(), "crew1", "m1")
	if !errors.Is(err, ErrNotCaptain) {
		t.Errorf("expected ErrNotCaptain, got %v", err)
	}
}

func TestCrewStartSession_SeedsPlayersFromRoster(t *testing.T) {
	t.Parallel()
	crew := testCrew("cap", "m1")
	crew.Members[0].CharacterName = "Monkey D. Luffy"
	crew.Members[0].CharacterID = "char-luffy"

	var savedSession *model.Session
	var savedCrew *model.Crew
	crewRepo := &mockCrewRepo{
		getFunc: func(ctx context.Context, crewID string) (*model.Crew, error) {
			return crew, nil
		},
		saveFunc: func(ctx context.Context, c *model.Crew) error {
			savedCrew = c
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		saveFunc: func(ctx context.Context, session *model.Session) error {
			savedSession = session
			return nil
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: crewRepo, SessionRepo: sessionRepo})

	sessionID, err := svc.StartSession(context.Background(), "crew1", "cap")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sessionID == "" {
		t.Fatal("empty session id")
	}

	if savedSession == nil {
		t.Fatal("session not persisted")
	}
	if len(savedSession.Players) != 2 {
		t.Fatalf("expected a player per member, got %d", len(savedSession.Players))
	}
	luffy := savedSession.Players[0]
	if luffy.Name != "Monkey D. Luffy" || luffy.CharacterID != "char-luffy" {
		t.Errorf("character binding lost: %+v", luffy)
	}
	if luffy.HP != 50 || luffy.MaxHP != 50 || luffy.Initiative != 0 {
		t.Errorf("default stats not applied: %+v", luffy)
	}
	if len(savedSession.Enemies) != 0 || savedSession.Round != 1 {
		t.Errorf("fresh session not empty: %+v", savedSession)
	}

	if savedCrew == nil || savedCrew.SessionID != sessionID {
		t.Error("session id not stored on crew")
	}
}

func TestCrewMyCrew_CrewlessIsNotAnError(t *testing.T) {
	t.Parallel()
	repo := &mockCrewRepo{
		getUserCrewIDFunc: func(ctx context.Context, userID string) (string, error) {
			return "", store.ErrNotFound
		},
	}
	svc := NewCrewService(CrewServiceConfig{Repo: repo})

	crew, err := svc.MyCrew(context.Background(), "u1")
	if err != nil {
		t.Fatalf("MyCrew: %v", err)
	}
	if crew != nil {
		t.Errorf("expected nil crew, got %+v", crew)
	}
}
