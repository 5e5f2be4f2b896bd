package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saltwind/grandline/api/internal/dice"
	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/store"
)

// mockSessionRepo implements SessionRepository with function fields
type mockSessionRepo struct {
	saveFunc   func(ctx context.Context, session *model.Session) error
	getFunc    func(ctx context.Context, sessionID string) (*model.Session, error)
	listFunc   func(ctx context.Context) ([]*model.Session, error)
	deleteFunc func(ctx context.Context, sessionID string) error
}

func (m *mockSessionRepo) Save(ctx context.Context, session *model.Session) error {
	return m.saveFunc(ctx, session)
}

func (m *mockSessionRepo) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	return m.getFunc(ctx, sessionID)
}

func (m *mockSessionRepo) List(ctx context.Context) ([]*model.Session, error) {
	return m.listFunc(ctx)
}

func (m *mockSessionRepo) Delete(ctx context.Context, sessionID string) error {
	return m.deleteFunc(ctx, sessionID)
}

// inMemorySessionRepo keeps sessions in a map for multi-step flows
type inMemorySessionRepo struct {
	sessions map[string]*model.Session
}

func newInMemorySessionRepo() *inMemorySessionRepo {
	return &inMemorySessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *inMemorySessionRepo) Save(_ context.Context, session *model.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *inMemorySessionRepo) Get(_ context.Context, sessionID string) (*model.Session, error) {
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *inMemorySessionRepo) List(_ context.Context) ([]*model.Session, error) {
	out := make([]*model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *inMemorySessionRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

func newSessionService(repo SessionRepository) *SessionService {
	return NewSessionService(SessionServiceConfig{
		Repo:   repo,
		Roller: dice.NewSeeded(1),
	})
}

func TestSessionLoad_AbsentReturnsDefaults(t *testing.T) {
	t.Parallel()
	repo := &mockSessionRepo{
		getFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, store.ErrNotFound
		},
	}
	svc := newSessionService(repo)

	session, err := svc.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if session.ID != "s1" || session.Round != 1 || session.CurrentTurn != 0 {
		t.Errorf("unexpected defaults: %+v", session)
	}
	if len(session.Players) != 0 || len(session.Enemies) != 0 || len(session.Notes) != 0 {
		t.Errorf("defaults not empty: %+v", session)
	}
}

func TestSessionLoad_PropagatesStorageError(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection lost")
	repo := &mockSessionRepo{
		getFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, boom
		},
	}
	svc := newSessionService(repo)

	if _, err := svc.Load(context.Background(), "s1"); !errors.Is(err, boom) {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestSessionAddPlayer_PersistsWholeDocument(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	session, err := svc.AddPlayer(ctx, "s1", "Monkey")
	if err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if len(session.Players) != 1 || session.Players[0].Name != "Monkey" {
		t.Fatalf("player not added: %+v", session.Players)
	}
	if session.Players[0].HP != 50 || session.Players[0].MaxHP != 50 {
		t.Errorf("defaults not applied: %+v", session.Players[0])
	}

	stored, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if len(stored.Players) != 1 {
		t.Errorf("stored document missing player: %+v", stored)
	}
}

func TestSessionUpdatePlayer_UnknownCombatant(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	if _, err := svc.AddPlayer(ctx, "s1", "Monkey"); err != nil {
		t.Fatal(err)
	}

	hp := 10
	_, err := svc.UpdatePlayer(ctx, "s1", "ghost", model.PlayerUpdate{HP: &hp})
	if !errors.Is(err, ErrCombatantNotFound) {
		t.Errorf("expected ErrCombatantNotFound, got %v", err)
	}
}

func TestSessionRoll_RecordsResultAndNote(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	session, result, err := svc.Roll(ctx, "s1", 20)
	if err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if result < 1 || result > 20 {
		t.Fatalf("result %d out of range", result)
	}
	if session.LastRoll == nil || session.LastRoll.Result != result {
		t.Errorf("last roll not recorded: %+v", session.LastRoll)
	}
	if len(session.Notes) != 1 || !strings.HasPrefix(session.Notes[0].Text, "Roll: d20 = ") {
		t.Errorf("roll note missing: %+v", session.Notes)
	}
}

func TestSessionRoll_InvalidDie(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)

	_, _, err := svc.Roll(context.Background(), "s1", 1)
	if !errors.Is(err, ErrInvalidDie) {
		t.Errorf("expected ErrInvalidDie, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Error("invalid roll must not persist anything")
	}
}

func TestSessionAdvanceTurn_EmptyDoesNotSave(t *testing.T) {
	t.Parallel()
	saves := 0
	repo := &mockSessionRepo{
		getFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, store.ErrNotFound
		},
		saveFunc: func(ctx context.Context, session *model.Session) error {
			saves++
			return nil
		},
	}
	svc := newSessionService(repo)

	session, err := svc.AdvanceTurn(context.Background(), "s1")
	if err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}
	if session.CurrentTurn != 0 || session.Round != 1 {
		t.Errorf("empty advance changed state: %+v", session)
	}
	if saves != 0 {
		t.Errorf("no-op advance saved %d times", saves)
	}
}

func TestSessionAdvanceTurn_FullCycle(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	_, _ = svc.AddPlayer(ctx, "s1", "A")
	_, _ = svc.AddPlayer(ctx, "s1", "B")
	_, _ = svc.AddEnemy(ctx, "s1", "X")

	var session *model.Session
	var err error
	for i := 0; i < 3; i++ {
		session, err = svc.AdvanceTurn(ctx, "s1")
		if err != nil {
			t.Fatalf("AdvanceTurn: %v", err)
		}
	}

	if session.CurrentTurn != 0 || session.Round != 2 {
		t.Errorf("expected turn 0 round 2, got turn %d round %d",
			session.CurrentTurn, session.Round)
	}
	if len(session.Notes) != 1 || session.Notes[0].Text != "Round 2 begins" {
		t.Errorf("round note missing: %+v", session.Notes)
	}
}

func TestSessionAddNote_RequiresText(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)

	if _, err := svc.AddNote(context.Background(), "s1", "   "); !errors.Is(err, ErrNoteTextRequired) {
		t.Errorf("expected ErrNoteTextRequired, got %v", err)
	}
}

func TestSessionOverwrite_NormalizesDocument(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	err := svc.Overwrite(ctx, "s1", &model.Session{ID: "other", Round: 0})
	if err != nil {
		t.Fatalf("Overwrite: %v", err)
	}

	stored, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("not stored under path id: %v", err)
	}
	if stored.ID != "s1" {
		t.Errorf("path id must win, got %q", stored.ID)
	}
	if stored.Round != 1 {
		t.Errorf("round not normalized: %d", stored.Round)
	}
	if stored.Players == nil || stored.Enemies == nil || stored.Notes == nil {
		t.Error("nil slices not normalized")
	}
}

func TestSessionDeleteStale(t *testing.T) {
	t.Parallel()
	repo := newInMemorySessionRepo()
	svc := newSessionService(repo)
	ctx := context.Background()

	old := model.NewSession("old", "", time.Now().Add(-40*24*time.Hour))
	old.UpdatedOn = time.Now().Add(-40 * 24 * time.Hour)
	fresh := model.NewSession("fresh", "", time.Now())
	_ = repo.Save(ctx, old)
	_ = repo.Save(ctx, fresh)

	deleted, err := svc.DeleteStale(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteStale: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
	if _, err := repo.Get(ctx, "old"); !errors.Is(err, store.ErrNotFound) {
		t.Error("stale session still present")
	}
	if _, err := repo.Get(ctx, "fresh"); err != nil {
		t.Error("fresh session swept")
	}
}
