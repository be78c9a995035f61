package web

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ameliahb/go-inner-library/internal/albums"
	"github.com/ameliahb/go-inner-library/internal/config"
	"github.com/ameliahb/go-inner-library/internal/db"
	"github.com/ameliahb/go-inner-library/internal/identity"
	"github.com/ameliahb/go-inner-library/internal/journal"
	"github.com/ameliahb/go-inner-library/internal/mood"
	"github.com/ameliahb/go-inner-library/internal/prompt"
	"github.com/ameliahb/go-inner-library/internal/webhook"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Config      *config.Config
	Database    *db.DB
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = time.Hour

// Server is the HTTP server for the web application.
type Server struct {
	router    chi.Router
	server    *http.Server
	templates *TemplateManager
	sessions  SessionManager
	handlers  *Handlers
	webhook   *webhook.Handler
	database  *db.DB
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	templates, err := NewTemplateManager(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	verifier, err := webhook.NewVerifier(cfg.Config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("creating webhook verifier: %w", err)
	}

	provider := identity.New(cfg.Config)
	sessions := NewDBSessionStore(cfg.Database)

	journalSvc := journal.New(cfg.Database.Entries())
	albumSvc := albums.New(cfg.Database.Entries(), cfg.Database.Albums(), cfg.Database.Memberships())
	prompts := prompt.NewSelector(
		prompt.DefaultCatalog(),
		prompt.NewHistoryStore(cfg.Config.DataDir),
	)
	recents := mood.NewRecentStore(cfg.Config.DataDir)

	handlers := NewHandlers(provider, sessions, templates, cfg.Database, journalSvc, albumSvc, prompts, recents)

	router := chi.NewRouter()

	s := &Server{
		router:    router,
		templates: templates,
		sessions:  sessions,
		handlers:  handlers,
		webhook:   webhook.NewHandler(verifier, cfg.Database.Users()),
		database:  cfg.Database,
	}

	// Configure middleware
	s.setupMiddleware()

	// Configure routes
	s.setupRoutes(cfg.StaticFS)

	// Create HTTP server
	s.server = &http.Server{
		Addr:         cfg.Config.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS) {
	// Static files
	fileServer := http.FileServer(http.FS(staticFS))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public pages
	s.router.Get("/", s.handlers.Home)

	// Auth routes
	s.router.Get("/auth/login", s.handlers.Login)
	s.router.Get(identity.CallbackPath, s.handlers.Callback)
	s.router.Post("/auth/logout", s.handlers.Logout)

	// Identity provider webhooks (authenticated by signature, not session)
	s.router.Post("/webhooks/identity", s.webhook.ServeHTTP)

	// Authenticated pages
	s.router.Group(func(r chi.Router) {
		r.Use(s.handlers.RequireAuth)

		r.Get("/dashboard", s.handlers.Dashboard)
		r.Get("/journal", s.handlers.Journal)

		r.Post("/entries", s.handlers.CreateEntry)
		r.Get("/entries/{id}", s.handlers.Entry)
		r.Post("/entries/{id}/albums", s.handlers.SaveEntryAlbums)

		r.Get("/albums", s.handlers.Albums)
		r.Post("/albums", s.handlers.CreateAlbum)
		r.Get("/albums/{id}", s.handlers.Album)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// cleanupSessions periodically purges expired sessions from the store so
// the sessions table does not grow without bound.
func (s *Server) cleanupSessions(stop <-chan struct{}) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := s.database.Sessions().DeleteExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("Error deleting expired sessions: %v", err)
			} else if n > 0 {
				log.Printf("Deleted %d expired sessions", n)
			}
		case <-stop:
			return
		}
	}
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Background session cleanup
	stopCleanup := make(chan struct{})
	go s.cleanupSessions(stopCleanup)
	defer close(stopCleanup)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
