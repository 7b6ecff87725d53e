package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdeck/internal/config"
	"github.com/phrazzld/taskdeck/internal/platform/postgres"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/web"
)

// application holds the shared dependencies of the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	userStore store.UserStore
	taskStore store.TaskStore
	sessions  auth.SessionService
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	renderer  *web.Renderer
}

// newApplication constructs the dependency graph: stores over the shared
// pool, the session service, the password services and the renderer.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	sessions, err := auth.NewSessionService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: postgres.NewUserStore(db, logger),
		taskStore: postgres.NewTaskStore(db, logger),
		sessions:  sessions,
		hasher:    auth.NewBcryptHasher(),
		verifier:  auth.NewBcryptVerifier(),
		renderer:  renderer,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
