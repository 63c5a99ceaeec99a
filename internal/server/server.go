// Package server provides the HTTP server of the course site backend.
// It handles routing, middleware configuration, and server lifecycle management.
//
// The server package follows a structured initialization approach with dependency injection
// and proper lifecycle management. It handles graceful shutdown and periodic maintenance
// such as dropping expired admin sessions.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/database"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/handlers"
	"github.com/coursecms/coursesite/internal/publish"
	"github.com/coursecms/coursesite/internal/repository"
	"github.com/coursecms/coursesite/internal/service"
	"github.com/coursecms/coursesite/internal/utils/ratelimit"
	"github.com/coursecms/coursesite/migrations"
	"github.com/coursecms/coursesite/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages signup, login and token verification
	AuthHandler *handlers.AuthHandler

	// AccessHandler resolves the page-access decision and the caller's profile
	AccessHandler *handlers.AccessHandler

	// PurchaseHandler serves checkout links and the purchase webhook
	PurchaseHandler *handlers.PurchaseHandler

	// PublishHandler commits content and serves the local export
	PublishHandler *handlers.PublishHandler

	// AdminHandler manages admin-mode sessions
	AdminHandler *handlers.AdminHandler

	// DraftHandler reads, replaces and streams draft slots
	DraftHandler *handlers.DraftHandler

	// ContentHandler applies field-level content edits
	ContentHandler *handlers.ContentHandler
}

// AuthProviders contains all authentication providers for the application.
type AuthProviders struct {
	// JWTService handles JWT token generation and validation
	JWTService *auth.JWTService

	// PasswordCfg contains password hashing configuration
	PasswordCfg *auth.PasswordConfig
}

// Server represents the API server.
// It encapsulates all server components and handles server lifecycle management,
// including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// authProviders contains authentication services
	authProviders *AuthProviders

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	// rateLimiter holds the per-client token buckets
	rateLimiter *ratelimit.Store

	// adminService owns the admin-mode sessions
	adminService *service.AdminService

	// drafts is the draft store shared by every editing surface
	drafts *draftstore.Store

	stopMaintenance chan struct{}
}

// NewServer creates a new server instance with all required components.
// It connects to the database, runs migrations and seeds, then wires
// the remaining components through Build.
//
// Parameters:
//   - cfg: Application configuration including database, server, and auth settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	db, err := setupDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s, err := Build(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Build wires the server on an already prepared database pool.
// The server initialization follows a specific order to ensure proper dependency
// management: auth providers → draft store → services → handlers → routes.
func Build(cfg *config.AppConfig, db *database.Pool) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool is required")
	}

	s := &Server{
		Config:          cfg,
		Db:              db,
		stopMaintenance: make(chan struct{}),
	}

	s.setupAuthProviders()

	drafts, err := s.setupDraftStore()
	if err != nil {
		return nil, fmt.Errorf("failed to set up draft store: %w", err)
	}
	s.drafts = drafts

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.setupRateLimiter()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to the database and runs migrations and seeds.
func setupDatabase(cfg *config.AppConfig) (*database.Pool, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return db, nil
}

func (s *Server) setupAuthProviders() {
	s.authProviders = &AuthProviders{
		JWTService:  auth.NewJWTService(&s.Config.JWT),
		PasswordCfg: auth.ConfigFromAppConfig(s.Config),
	}
}

// setupRateLimiter creates the limiter store. Every category shares the
// configured rate; publish is held to a tenth of it.
func (s *Server) setupRateLimiter() {
	rate := ratelimit.Rate{
		RequestsPerSecond: s.Config.RateLimit.RequestsPerSecond,
		Burst:             s.Config.RateLimit.Burst,
	}
	s.rateLimiter = ratelimit.NewStore(rate, constants.RateLimitCleanupInterval, constants.RateLimitIdleTTL)

	publishBurst := rate.Burst / 10
	if publishBurst < 1 {
		publishBurst = 1
	}
	s.rateLimiter.SetRate(constants.RateCategoryPublish, ratelimit.Rate{
		RequestsPerSecond: rate.RequestsPerSecond / 10,
		Burst:             publishBurst,
	})
}

// setupDraftStore selects the draft persistence adapter from configuration.
func (s *Server) setupDraftStore() (*draftstore.Store, error) {
	var backend draftstore.Backend
	switch s.Config.Drafts.Backend {
	case constants.DraftBackendMemory:
		backend = draftstore.NewMemoryBackend()
	case constants.DraftBackendFile:
		backend = draftstore.NewFileBackend(s.Config.Drafts.Dir)
	case constants.DraftBackendDatabase, "":
		backend = repository.NewDraftRepository(s.Db)
	default:
		return nil, fmt.Errorf("unknown draft backend: %s", s.Config.Drafts.Backend)
	}

	log.Info().Str("backend", s.Config.Drafts.Backend).Msg("Draft store configured")
	return draftstore.New(backend), nil
}

// setupHandlers initializes repositories, services and HTTP handlers.
func (s *Server) setupHandlers() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}

	userRepo := repository.NewUserRepository(s.Db)
	profileRepo := repository.NewProfileRepository(s.Db)

	authService := service.NewAuthService(userRepo, s.authProviders.JWTService, s.authProviders.PasswordCfg)
	accessService := service.NewAccessService(profileRepo)
	purchaseService := service.NewPurchaseService(userRepo, profileRepo, s.Config.Purchase)
	publishService := service.NewPublishService(s.drafts, publish.NewFromSettings(s.Config.GitHub))
	draftService := service.NewDraftService(s.drafts)
	s.adminService = service.NewAdminService(s.Config.Admin.AccessCode, constants.AdminSessionTTL)

	s.Handlers = &Handlers{
		AuthHandler:     handlers.NewAuthHandler(authService),
		AccessHandler:   handlers.NewAccessHandler(accessService),
		PurchaseHandler: handlers.NewPurchaseHandler(purchaseService),
		PublishHandler:  handlers.NewPublishHandler(publishService),
		AdminHandler:    handlers.NewAdminHandler(s.adminService),
		DraftHandler:    handlers.NewDraftHandler(draftService, s.Config.CORS.AllowedOrigins),
		ContentHandler:  handlers.NewContentHandler(draftService),
	}

	return nil
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It runs in a blocking mode, waiting for either server errors or shutdown signals.
//
// Returns:
//   - An error if the server fails to start or encounters an error during operation
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, closing all connections properly.
// It waits for in-flight requests, then stops background work and closes the database.
//
// Parameters:
//   - ctx: Context with timeout for the shutdown operation
//
// Returns:
//   - An error if shutdown fails within the context timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	select {
	case <-s.stopMaintenance:
	default:
		close(s.stopMaintenance)
	}
	s.rateLimiter.Close()

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

// SetupMaintenanceTasks starts the background loop that drops expired
// admin sessions. It stops when the server shuts down.
func (s *Server) SetupMaintenanceTasks() {
	ticker := time.NewTicker(constants.AdminPurgeInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stopMaintenance:
				return
			case <-ticker.C:
				if count := s.adminService.PurgeExpired(); count > 0 {
					log.Info().Int("count", count).Msg("Cleaned up expired admin sessions")
				}
			}
		}
	}()
}
