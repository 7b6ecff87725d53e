package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskdeck/internal/web"
	webMiddleware "github.com/phrazzld/taskdeck/internal/web/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(webMiddleware.TraceMiddleware)

	authHandler := web.NewAuthHandler(
		app.userStore,
		app.sessions,
		app.hasher,
		app.verifier,
		app.renderer,
		app.logger,
	)
	taskHandler := web.NewTaskHandler(app.taskStore, app.renderer, app.logger)
	sessionMiddleware := webMiddleware.NewSessionMiddleware(app.sessions)

	// Authentication endpoints (public)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Task routes, all behind the session gate
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.Authenticate)
		r.Get("/", taskHandler.List)
		r.Post("/add", taskHandler.Add)
		r.Post("/toggle/{taskID}", taskHandler.Toggle)
		r.Post("/delete/{taskID}", taskHandler.Delete)
		r.Post("/edit/{taskID}", taskHandler.Edit)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
