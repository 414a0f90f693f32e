package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernhq/fern/api/internal/clock"
	"github.com/fernhq/fern/api/internal/config"
	"github.com/fernhq/fern/api/internal/database"
	"github.com/fernhq/fern/api/internal/handler"
	"github.com/fernhq/fern/api/internal/llm"
	"github.com/fernhq/fern/api/internal/middleware"
	"github.com/fernhq/fern/api/internal/repository"
	"github.com/fernhq/fern/api/internal/service"
	"github.com/fernhq/fern/api/pkg/jwt"
)

// store joins the user and completion repositories so one value can back
// the task and stats service interfaces.
type store struct {
	*repository.UserRepository
	*repository.CompletionRepository
}

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

	// Initialize the app clock (all date keys are local to one timezone)
	appClock, err := clock.New()
	if err != nil {
		slog.Error("failed to initialize clock", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	st := &store{
		UserRepository:       userRepo,
		CompletionRepository: completionRepo,
	}

	// Initialize the suggestion client. Without an API key it fails closed
	// at request time, which keeps local development usable.
	suggestionClient := llm.NewOpenRouterClient(cfg.Suggestion)
	if cfg.Suggestion.APIKey == "" {
		slog.Warn("no suggestion api key configured, task generation will fail")
	}

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Signer:   jwtService,
	})

	questionnaireService := service.NewQuestionnaireService(service.QuestionnaireServiceConfig{
		Repo: userRepo,
	})

	taskService := service.NewTaskService(service.TaskServiceConfig{
		Repo:        st,
		Communities: communityRepo,
		Suggester:   suggestionClient,
		Clock:       appClock,
	})

	suggestionService := service.NewSuggestionService(service.SuggestionServiceConfig{
		Generator: suggestionClient,
	})

	socialService := service.NewSocialService(service.SocialServiceConfig{
		Users:       userRepo,
		Communities: communityRepo,
	})

	statsService := service.NewStatsService(service.StatsServiceConfig{
		Repo:  st,
		Clock: appClock,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	questionnaireHandler := handler.NewQuestionnaireHandler(questionnaireService)
	taskHandler := handler.NewTaskHandler(taskService, suggestionService)
	socialHandler := handler.NewSocialHandler(socialService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	// Questionnaire catalog (public)
	mux.HandleFunc("GET /v1/questionnaire", questionnaireHandler.Catalog)

	authMiddleware := middleware.Auth(authService)

	// Auth endpoints (protected)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Questionnaire endpoints (protected)
	mux.Handle("POST /v1/questionnaire/submit", authMiddleware(http.HandlerFunc(questionnaireHandler.Submit)))
	mux.Handle("POST /v1/questionnaire/reset", authMiddleware(http.HandlerFunc(questionnaireHandler.Reset)))

	// Daily task endpoints
	mux.Handle("GET /v1/tasks/daily", authMiddleware(http.HandlerFunc(taskHandler.Daily)))
	mux.Handle("POST /v1/tasks/complete", authMiddleware(http.HandlerFunc(taskHandler.Complete)))
	mux.Handle("POST /v1/suggestions", authMiddleware(http.HandlerFunc(taskHandler.Suggest)))

	// Friend endpoints
	mux.Handle("POST /v1/friends", authMiddleware(http.HandlerFunc(socialHandler.AddFriend)))
	mux.Handle("GET /v1/friends", authMiddleware(http.HandlerFunc(socialHandler.ListFriends)))

	// Community endpoints
	mux.Handle("POST /v1/communities", authMiddleware(http.HandlerFunc(socialHandler.CreateCommunity)))
	mux.Handle("GET /v1/communities", authMiddleware(http.HandlerFunc(socialHandler.ListCommunities)))
	mux.Handle("GET /v1/communities/{communityId}", authMiddleware(http.HandlerFunc(socialHandler.GetCommunity)))
	mux.Handle("POST /v1/communities/{communityId}/join", authMiddleware(http.HandlerFunc(socialHandler.JoinCommunity)))

	// Stats, feed, and leaderboard endpoints
	mux.Handle("GET /v1/stats/home", authMiddleware(http.HandlerFunc(statsHandler.Home)))
	mux.Handle("GET /v1/feed", authMiddleware(http.HandlerFunc(statsHandler.Feed)))
	mux.Handle("GET /v1/leaderboard", authMiddleware(http.HandlerFunc(statsHandler.Leaderboard)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
