package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/saltwind/grandline/api/internal/model"
	"github.com/saltwind/grandline/api/internal/repository"
	"github.com/saltwind/grandline/api/internal/service"
	"github.com/saltwind/grandline/api/internal/store"
)

func TestSessionSweeper_RunOnceDeletesStale(t *testing.T) {
	t.Parallel()

	repo := repository.NewSessionRepository(store.NewMemoryStore())
	sessions := service.NewSessionService(service.SessionServiceConfig{Repo: repo})

	ctx := context.Background()
	now := time.Now()

	stale := model.NewSession("stale", "", now.Add(-48*time.Hour))
	stale.UpdatedOn = now.Add(-48 * time.Hour)
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatal(err)
	}

	fresh := model.NewSession("fresh", "", now)
	fresh.UpdatedOn = now
	if err := repo.Save(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	sweeper := NewSessionSweeper(sessions, 24*time.Hour, time.Hour)

	deleted, err := sweeper.RunOnce(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}

	if _, err := repo.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh session should survive: %v", err)
	}
	if _, err := repo.Get(ctx, "stale"); err == nil {
		t.Error("stale session should be gone")
	}
}

func TestSessionSweeper_StartStop(t *testing.T) {
	t.Parallel()

	repo := repository.NewSessionRepository(store.NewMemoryStore())
	sessions := service.NewSessionService(service.SessionServiceConfig{Repo: repo})

	sweeper := NewSessionSweeper(sessions, 24*time.Hour, time.Hour)
	sweeper.Start()
	if !sweeper.IsRunning() {
		t.Fatal("sweeper should be running after Start")
	}

	sweeper.Stop()
	if sweeper.IsRunning() {
		t.Fatal("sweeper should be stopped after Stop")
	}
}
