package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/saltwind/grandline/api/internal/service"
)

// SessionSweeper periodically deletes combat sessions that have not been
// touched within the retention window.
type SessionSweeper struct {
	sessions  *service.SessionService
	retention time.Duration
	interval  time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewSessionSweeper creates a new session sweeper job
func NewSessionSweeper(sessions *service.SessionService, retention, interval time.Duration) *SessionSweeper {
	if retention == 0 {
		retention = 30 * 24 * time.Hour
	}
	if interval == 0 {
		interval = 6 * time.Hour
	}
	return &SessionSweeper{
		sessions:  sessions,
		retention: retention,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the sweeper loop
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("session sweeper started",
		slog.Duration("retention", s.retention),
		slog.Duration("interval", s.interval),
	)
}

// Stop gracefully stops the sweeper loop
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("session sweeper stopped")
}

func (s *SessionSweeper) run() {
	defer s.wg.Done()

	// Sweep once on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.sessions.DeleteStale(ctx, s.retention)
	if err != nil {
		slog.Error("session sweep failed", slog.Any("error", err))
		return
	}

	if deleted > 0 {
		slog.Info("session sweep complete", slog.Int("deleted", deleted))
	}
}

// RunOnce runs a single sweep (for testing or manual trigger)
func (s *SessionSweeper) RunOnce(ctx context.Context) (int, error) {
	return s.sessions.DeleteStale(ctx, s.retention)
}

// IsRunning returns whether the sweeper is running
func (s *SessionSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
