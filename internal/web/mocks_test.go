package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/service/auth"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/web/shared"
	"github.com/stretchr/testify/require"
)

// mockTaskStore implements store.TaskStore with injectable behavior.
// Unset functions return empty results so list rendering works out of
// the box.
type mockTaskStore struct {
	listFn            func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	createFn          func(ctx context.Context, task *domain.Task) error
	updateFn          func(ctx context.Context, task *domain.Task) error
	toggleFn          func(ctx context.Context, id int64) error
	deleteFn          func(ctx context.Context, id int64) error
	categoriesFn      func(ctx context.Context) ([]string, error)
	countByCategoryFn func(ctx context.Context) ([]store.CategoryCount, error)
	countByPriorityFn func(ctx context.Context) ([]store.PriorityCount, error)
	summarizeFn       func(ctx context.Context) (store.Summary, error)

	createCalls int
	updateCalls int
	toggleCalls int
	deleteCalls int
}

var _ store.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []*domain.Task{}, nil
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) Toggle(ctx context.Context, id int64) error {
	m.toggleCalls++
	if m.toggleFn != nil {
		return m.toggleFn(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) Categories(ctx context.Context) ([]string, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return []string{}, nil
}

func (m *mockTaskStore) CountByCategory(ctx context.Context) ([]store.CategoryCount, error) {
	if m.countByCategoryFn != nil {
		return m.countByCategoryFn(ctx)
	}
	return []store.CategoryCount{}, nil
}

func (m *mockTaskStore) CountByPriority(ctx context.Context) ([]store.PriorityCount, error) {
	if m.countByPriorityFn != nil {
		return m.countByPriorityFn(ctx)
	}
	return []store.PriorityCount{}, nil
}

func (m *mockTaskStore) Summarize(ctx context.Context) (store.Summary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx)
	}
	return store.Summary{}, nil
}

// mockUserStore implements store.UserStore with injectable behavior.
type mockUserStore struct {
	createFn        func(ctx context.Context, user *domain.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)

	createCalls int
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, store.ErrUserNotFound
}

// stubSessionService issues a fixed token.
type stubSessionService struct {
	token       string
	generateErr error
}

var _ auth.SessionService = (*stubSessionService)(nil)

func (s *stubSessionService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return s.token, nil
}

func (s *stubSessionService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if token != s.token {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{}, nil
}

func (s *stubSessionService) Lifetime() time.Duration {
	return time.Hour
}

// stubHasher avoids bcrypt's cost in handler tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

// stubVerifier matches hashes produced by stubHasher.
type stubVerifier struct{}

func (stubVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// newFormRequest builds a POST request with a url-encoded form body.
func newFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// getFlash decodes the flash cookie set on the response, if any.
func getFlash(t *testing.T, rec *httptest.ResponseRecorder) *shared.Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == shared.FlashCookieName && c.MaxAge >= 0 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(c)
			return shared.PopFlash(httptest.NewRecorder(), req)
		}
	}
	return nil
}

// requireFlash asserts that the response carries the given flash message.
func requireFlash(t *testing.T, rec *httptest.ResponseRecorder, message, category string) {
	t.Helper()
	flash := getFlash(t, rec)
	require.NotNil(t, flash, "expected a flash cookie on the response")
	require.Equal(t, message, flash.Message)
	require.Equal(t, category, flash.Category)
}
