package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saltwind/grandline/api/internal/config"
	"github.com/saltwind/grandline/api/internal/database"
	"github.com/saltwind/grandline/api/internal/handler"
	"github.com/saltwind/grandline/api/internal/jobs"
	"github.com/saltwind/grandline/api/internal/middleware"
	"github.com/saltwind/grandline/api/internal/repository"
	"github.com/saltwind/grandline/api/internal/service"
	"github.com/saltwind/grandline/api/internal/store"
	"github.com/saltwind/grandline/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	kv := store.NewSurrealStore(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(kv)
	characterRepo := repository.NewCharacterRepository(kv)
	crewRepo := repository.NewCrewRepository(kv)
	sessionRepo := repository.NewSessionRepository(kv)
	forumRepo := repository.NewForumRepository(kv)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})

	characterService := service.NewCharacterService(service.CharacterServiceConfig{
		Repo: characterRepo,
	})

	crewService := service.NewCrewService(service.CrewServiceConfig{
		Repo:        crewRepo,
		SessionRepo: sessionRepo,
	})

	sessionService := service.NewSessionService(service.SessionServiceConfig{
		Repo: sessionRepo,
	})

	progressService := service.NewProgressService(service.ProgressServiceConfig{
		CharacterRepo: characterRepo,
	})

	forumService := service.NewForumService(service.ForumServiceConfig{
		Repo: forumRepo,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Start session sweeper
	sessionSweeper := jobs.NewSessionSweeper(sessionService, cfg.Session.Retention, cfg.Session.SweepInterval)
	sessionSweeper.Start()
	defer sessionSweeper.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authService)
	characterHandler := handler.NewCharacterHandler(characterService)
	crewHandler := handler.NewCrewHandler(crewService)
	sessionHandler := handler.NewSessionHandler(sessionService, progressService)
	forumHandler := handler.NewForumHandler(forumService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(tokenService)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Character endpoints
	mux.Handle("GET /v1/characters", authMiddleware(http.HandlerFunc(characterHandler.List)))
	mux.Handle("POST /v1/characters", authMiddleware(http.HandlerFunc(characterHandler.Save)))
	mux.Handle("GET /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Get)))
	mux.Handle("PUT /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Update)))
	mux.Handle("DELETE /v1/characters/{characterId}", authMiddleware(http.HandlerFunc(characterHandler.Delete)))

	// Crew endpoints
	mux.Handle("GET /v1/crews", authMiddleware(http.HandlerFunc(crewHandler.List)))
	mux.Handle("POST /v1/crews", authMiddleware(http.HandlerFunc(crewHandler.Create)))
	mux.Handle("GET /v1/crews/mine", authMiddleware(http.HandlerFunc(crewHandler.Mine)))
	mux.Handle("GET /v1/crews/{crewId}", authMiddleware(http.HandlerFunc(crewHandler.Get)))
	mux.Handle("POST /v1/crews/{crewId}/join", authMiddleware(http.HandlerFunc(crewHandler.Join)))
	mux.Handle("POST /v1/crews/{crewId}/leave", authMiddleware(http.HandlerFunc(crewHandler.Leave)))
	mux.Handle("POST /v1/crews/{crewId}/start-session", authMiddleware(http.HandlerFunc(crewHandler.StartSession)))

	// Session endpoints
	mux.Handle("GET /v1/sessions/{sessionId}", authMiddleware(http.HandlerFunc(sessionHandler.Get)))
	mux.Handle("PUT /v1/sessions/{sessionId}", authMiddleware(http.HandlerFunc(sessionHandler.Put)))
	mux.Handle("POST /v1/sessions/{sessionId}", authMiddleware(http.HandlerFunc(sessionHandler.Put)))
	mux.Handle("POST /v1/sessions/{sessionId}/players", authMiddleware(http.HandlerFunc(sessionHandler.AddPlayer)))
	mux.Handle("PATCH /v1/sessions/{sessionId}/players/{playerId}", authMiddleware(http.HandlerFunc(sessionHandler.UpdatePlayer)))
	mux.Handle("DELETE /v1/sessions/{sessionId}/players/{playerId}", authMiddleware(http.HandlerFunc(sessionHandler.RemovePlayer)))
	mux.Handle("POST /v1/sessions/{sessionId}/enemies", authMiddleware(http.HandlerFunc(sessionHandler.AddEnemy)))
	mux.Handle("PATCH /v1/sessions/{sessionId}/enemies/{enemyId}", authMiddleware(http.HandlerFunc(sessionHandler.UpdateEnemy)))
	mux.Handle("DELETE /v1/sessions/{sessionId}/enemies/{enemyId}", authMiddleware(http.HandlerFunc(sessionHandler.RemoveEnemy)))
	mux.Handle("POST /v1/sessions/{sessionId}/sort-initiative", authMiddleware(http.HandlerFunc(sessionHandler.SortInitiative)))
	mux.Handle("POST /v1/sessions/{sessionId}/advance-turn", authMiddleware(http.HandlerFunc(sessionHandler.AdvanceTurn)))
	mux.Handle("POST /v1/sessions/{sessionId}/roll", authMiddleware(http.HandlerFunc(sessionHandler.Roll)))
	mux.Handle("POST /v1/sessions/{sessionId}/notes", authMiddleware(http.HandlerFunc(sessionHandler.AddNote)))
	mux.Handle("POST /v1/sessions/{sessionId}/save-progress", authMiddleware(http.HandlerFunc(sessionHandler.SaveProgress)))

	// Forum endpoints
	mux.Handle("GET /v1/forum/posts", authMiddleware(http.HandlerFunc(forumHandler.ListPosts)))
	mux.Handle("POST /v1/forum/posts", authMiddleware(http.HandlerFunc(forumHandler.CreatePost)))
	mux.Handle("GET /v1/forum/posts/{postId}", authMiddleware(http.HandlerFunc(forumHandler.GetPost)))
	mux.Handle("PATCH /v1/forum/posts/{postId}", authMiddleware(http.HandlerFunc(forumHandler.UpdatePost)))
	mux.Handle("DELETE /v1/forum/posts/{postId}", authMiddleware(http.HandlerFunc(forumHandler.DeletePost)))
	mux.Handle("POST /v1/forum/posts/{postId}/like", authMiddleware(http.HandlerFunc(forumHandler.ToggleLike)))
	mux.Handle("POST /v1/forum/posts/{postId}/comments", authMiddleware(http.HandlerFunc(forumHandler.AddComment)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
