package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/web/middleware"
	"github.com/phrazzld/taskdeck/internal/web/shared"
)

// AuthPage is the data structure the login/register templates consume.
type AuthPage struct {
	Error    string
	Username string
	Flash    *shared.Flash
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	userStore store.UserStore
	sessions  auth.SessionService
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	renderer  *Renderer
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	sessions auth.SessionService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	renderer *Renderer,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore: userStore,
		sessions:  sessions,
		hasher:    hasher,
		verifier:  verifier,
		renderer:  renderer,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "auth_handler")),
	}
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "register.html", AuthPage{Flash: shared.PopFlash(w, r)})
}

// Register handles POST /register.
// A duplicate username surfaces from the store's UNIQUE constraint and is
// reported as a validation message, not a server error.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseCredentialsForm(r)
	if err != nil {
		h.renderer.Render(w, r, "register.html", AuthPage{Error: "Invalid form submission"})
		return
	}

	if err := h.validator.Struct(form); err != nil {
		h.renderer.Render(w, r, "register.html", AuthPage{
			Error:    "Username and password are required; password must be at most 72 characters",
			Username: form.Username,
		})
		return
	}

	user, err := domain.NewUser(form.Username, form.Password)
	if err != nil {
		h.renderer.Render(w, r, "register.html", AuthPage{
			Error:    err.Error(),
			Username: form.Username,
		})
		return
	}

	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err.Error())
		h.renderer.Render(w, r, "register.html", AuthPage{
			Error:    "Something went wrong",
			Username: form.Username,
		})
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			h.renderer.Render(w, r, "register.html", AuthPage{
				Error:    "Username is already taken",
				Username: form.Username,
			})
			return
		}
		log.Error("failed to create user", "error", err.Error(), "username", form.Username)
		h.renderer.Render(w, r, "register.html", AuthPage{
			Error:    "Something went wrong",
			Username: form.Username,
		})
		return
	}

	shared.SetFlash(w, "Registration successful", shared.FlashSuccess)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "login.html", AuthPage{Flash: shared.PopFlash(w, r)})
}

// Login handles POST /login.
// Invalid credentials re-render the form with a message; no redirect and
// no session change. Unknown username and wrong password are reported
// identically.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	form, err := parseCredentialsForm(r)
	if err != nil || form.Username == "" || form.Password == "" {
		h.renderer.Render(w, r, "login.html", AuthPage{
			Error:    "Invalid credentials",
			Username: form.Username,
		})
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), form.Username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to get user by username", "error", err.Error(), "username", form.Username)
		}
		h.renderer.Render(w, r, "login.html", AuthPage{
			Error:    "Invalid credentials",
			Username: form.Username,
		})
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, form.Password); err != nil {
		h.renderer.Render(w, r, "login.html", AuthPage{
			Error:    "Invalid credentials",
			Username: form.Username,
		})
		return
	}

	token, err := h.sessions.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate session token", "error", err.Error(), "user_id", user.ID)
		h.renderer.Render(w, r, "login.html", AuthPage{
			Error:    "Something went wrong",
			Username: form.Username,
		})
		return
	}

	middleware.SetSessionCookie(w, token, int(h.sessions.Lifetime().Seconds()))
	shared.SetFlash(w, "Login successful", shared.FlashSuccess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout.
// Clears the session unconditionally and redirects to login.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	shared.SetFlash(w, "Logged out", shared.FlashInfo)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
