package web_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/web"
	"github.com/phrazzld/taskdeck/internal/web/middleware"
	"github.com/phrazzld/taskdeck/internal/web/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(t *testing.T, userStore store.UserStore, sessions *stubSessionService) *web.AuthHandler {
	t.Helper()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	return web.NewAuthHandler(
		userStore,
		sessions,
		stubHasher{},
		stubVerifier{},
		renderer,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	sessions := &stubSessionService{token: "session-token"}

	t.Run("valid_registration_redirects_to_login", func(t *testing.T) {
		var created *domain.User
		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Register(rec, newFormRequest("/register", url.Values{
			"username": {"alice"},
			"password": {"correcthorse"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		requireFlash(t, rec, "Registration successful", shared.FlashSuccess)

		require.NotNil(t, created)
		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "hashed:correcthorse", created.HashedPassword)
		assert.Empty(t, created.Password, "plaintext must not reach the store")
	})

	t.Run("duplicate_username_reported_as_validation", func(t *testing.T) {
		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrUsernameExists
			},
		}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Register(rec, newFormRequest("/register", url.Values{
			"username": {"alice"},
			"password": {"correcthorse"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username is already taken")
		assert.Contains(t, rec.Body.String(), "alice")
	})

	t.Run("short_password_is_accepted", func(t *testing.T) {
		var created *domain.User
		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Register(rec, newFormRequest("/register", url.Values{
			"username": {"alice"},
			"password": {"pw123"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		require.Equal(t, 1, userStore.createCalls)
		require.NotNil(t, created)
		assert.Equal(t, "hashed:pw123", created.HashedPassword)
	})

	t.Run("missing_password_never_reaches_the_store", func(t *testing.T) {
		userStore := &mockUserStore{}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Register(rec, newFormRequest("/register", url.Values{
			"username": {"alice"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username and password are required")
		assert.Zero(t, userStore.createCalls)
	})

	t.Run("store_failure_yields_generic_message", func(t *testing.T) {
		userStore := &mockUserStore{
			createFn: func(ctx context.Context, user *domain.User) error {
				return errors.New("pq: connection refused")
			},
		}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Register(rec, newFormRequest("/register", url.Values{
			"username": {"alice"},
			"password": {"correcthorse"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	storedUser := &domain.User{
		ID:             userID,
		Username:       "alice",
		HashedPassword: "hashed:correcthorse",
	}

	t.Run("valid_credentials_set_session_and_redirect", func(t *testing.T) {
		userStore := &mockUserStore{
			getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				require.Equal(t, "alice", username)
				return storedUser, nil
			},
		}
		sessions := &stubSessionService{token: "session-token"}
		handler := newAuthHandler(t, userStore, sessions)

		rec := httptest.NewRecorder()
		handler.Login(rec, newFormRequest("/login", url.Values{
			"username": {"alice"},
			"password": {"correcthorse"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		requireFlash(t, rec, "Login successful", shared.FlashSuccess)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "session-token", cookie.Value)
		assert.Equal(t, 3600, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("wrong_password_rerenders_without_session", func(t *testing.T) {
		userStore := &mockUserStore{
			getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return storedUser, nil
			},
		}
		handler := newAuthHandler(t, userStore, &stubSessionService{token: "session-token"})

		rec := httptest.NewRecorder()
		handler.Login(rec, newFormRequest("/login", url.Values{
			"username": {"alice"},
			"password": {"wronghorse"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("unknown_username_reported_identically", func(t *testing.T) {
		userStore := &mockUserStore{
			getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		handler := newAuthHandler(t, userStore, &stubSessionService{token: "session-token"})

		rec := httptest.NewRecorder()
		handler.Login(rec, newFormRequest("/login", url.Values{
			"username": {"nobody"},
			"password": {"correcthorse"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("empty_fields_rejected_without_store_lookup", func(t *testing.T) {
		lookups := 0
		userStore := &mockUserStore{
			getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				lookups++
				return nil, store.ErrUserNotFound
			},
		}
		handler := newAuthHandler(t, userStore, &stubSessionService{token: "session-token"})

		rec := httptest.NewRecorder()
		handler.Login(rec, newFormRequest("/login", url.Values{
			"username": {"alice"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.Zero(t, lookups)
	})
}

func TestRegisterThenLogin(t *testing.T) {
	users := map[string]*domain.User{}
	userStore := &mockUserStore{
		createFn: func(ctx context.Context, user *domain.User) error {
			users[user.Username] = user
			return nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if u, ok := users[username]; ok {
				return u, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	handler := newAuthHandler(t, userStore, &stubSessionService{token: "session-token"})

	regRec := httptest.NewRecorder()
	handler.Register(regRec, newFormRequest("/register", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	}))
	require.Equal(t, http.StatusSeeOther, regRec.Code)
	require.Equal(t, "/login", regRec.Header().Get("Location"))

	loginRec := httptest.NewRecorder()
	handler.Login(loginRec, newFormRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	}))
	assert.Equal(t, http.StatusSeeOther, loginRec.Code)
	assert.Equal(t, "/", loginRec.Header().Get("Location"))
	require.NotNil(t, sessionCookie(loginRec))
}

func TestLogout(t *testing.T) {
	handler := newAuthHandler(t, &mockUserStore{}, &stubSessionService{token: "session-token"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-token"})
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	requireFlash(t, rec, "Logged out", shared.FlashInfo)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthForms(t *testing.T) {
	handler := newAuthHandler(t, &mockUserStore{}, &stubSessionService{token: "session-token"})

	t.Run("login_form_shows_flash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)

		setRec := httptest.NewRecorder()
		shared.SetFlash(setRec, "Registration successful", shared.FlashSuccess)
		req.AddCookie(setRec.Result().Cookies()[0])

		handler.LoginForm(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Registration successful")
	})

	t.Run("register_form_renders", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.RegisterForm(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
