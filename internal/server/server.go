// Package server wires the HTTP server together: router, middleware,
// routes, and the dependency chain from database to handlers. main.go
// stays minimal; everything it starts is assembled here, in one place.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nabil/snipdrop/internal/auth"
	"github.com/nabil/snipdrop/internal/handler"
	"github.com/nabil/snipdrop/internal/media"
	"github.com/nabil/snipdrop/internal/middleware"
	sqliteRepo "github.com/nabil/snipdrop/internal/repository/sqlite"
	"github.com/nabil/snipdrop/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port       int
	DBPath     string
	UploadDir  string
	BcryptCost int // 0 means the bcrypt default
}

// Server owns the router and the resources that must be released on
// shutdown — the database connection in particular.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB + media.Store → services → handlers → routes
//
// Each layer receives interfaces or services, never the layers below them;
// handlers don't know about SQL, services don't know about HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table:
//
//	POST /users/         → register
//	POST /login          → login
//	POST /snippets/      → upload
//	GET  /feed/          → recent snippets
//	POST /interactions/  → record like/skip/save
//	GET  /uploads/*      → stored audio files (read-only static serving)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	mediaStore, err := media.New(s.config.UploadDir)
	if err != nil {
		return fmt.Errorf("creating media store: %w", err)
	}

	passwords := auth.NewPasswordServiceWithCost(s.config.BcryptCost)

	userService := service.NewUserService(s.db.Users(), passwords, s.logger)
	snippetService := service.NewSnippetService(s.db.Snippets(), s.db.Users(), mediaStore, s.logger)
	interactionService := service.NewInteractionService(
		s.db.Interactions(), s.db.Users(), s.db.Snippets(), s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)
	interactionHandler := handler.NewInteractionHandler(interactionService, s.logger)

	s.router.Post("/users/", userHandler.HandleRegister)
	s.router.Post("/login", userHandler.HandleLogin)
	s.router.Post("/snippets/", snippetHandler.HandleUpload)
	s.router.Get("/feed/", snippetHandler.HandleFeed)
	s.router.Post("/interactions/", interactionHandler.HandleCreate)

	// Uploaded audio is served straight from the media directory. The
	// filenames are opaque generated tokens, so directory contents reveal
	// nothing; StripPrefix maps /uploads/x.mp3 → {UploadDir}/x.mp3.
	fileServer := http.FileServer(http.Dir(mediaStore.Dir()))
	s.router.Handle("/uploads/*", http.StripPrefix(media.URLPrefix, fileServer))

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests for up to 30s,
// close the database (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("uploads", s.config.UploadDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
