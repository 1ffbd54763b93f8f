package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/observability"
	apperrors "github.com/spec-kit/venue-service/pkg/util"
)

type fakeStore struct {
	users map[string]*domain.User
	err   error
}

func (s *fakeStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newGateApp(t *testing.T, tm *TokenManager, store CredentialStore) *fiber.App {
	t.Helper()
	gate := NewGate(
		tm,
		store,
		NewRevocationList(nil, zap.NewNop()),
		NewPolicyTable(DefaultSkipPolicies()...),
		zap.NewNop(),
		observability.NewMetrics(),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	app.Use(gate.Handle)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/venues/:id", RequireAuthenticated(), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"username": principal.User.Username, "authorities": principal.Authorities})
	})
	app.Get("/users", RequireAuthority("ROLE_ADMIN"), func(c *fiber.Ctx) error {
		return c.SendString("admin area")
	})
	return app
}

func activeUser(username string, userType domain.UserType, roles ...domain.Role) *domain.User {
	return &domain.User{
		ID:       1,
		Username: username,
		UserType: userType,
		Status:   domain.UserStatusActive,
		Roles:    roles,
	}
}

func TestGate_SkipsPublicPath(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGateApp(t, tm, &fakeStore{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_ValidTokenAuthenticated(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	store := &fakeStore{users: map[string]*domain.User{
		"alice": activeUser("alice", domain.UserTypeAdmin),
	}}
	app := newGateApp(t, tm, store)

	tokenStr, _, err := tm.Issue("alice", 1, domain.UserTypeAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGate_MissingHeaderRejectedByGuard(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGateApp(t, tm, &fakeStore{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/venues/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_NonBearerSchemeRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGateApp(t, tm, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_ExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	store := &fakeStore{users: map[string]*domain.User{
		"alice": activeUser("alice", domain.UserTypeAdmin),
	}}
	app := newGateApp(t, tm, store)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issueExpired(t, tm, "alice", 1))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_WrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)
	store := &fakeStore{users: map[string]*domain.User{
		"alice": activeUser("alice", domain.UserTypeAdmin),
	}}
	app := newGateApp(t, tm, store)

	tokenStr, _, err := other.Issue("alice", 1, domain.UserTypeAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_UnknownSubjectRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGateApp(t, tm, &fakeStore{users: map[string]*domain.User{}})

	tokenStr, _, err := tm.Issue("ghost", 9, domain.UserTypeUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_InactiveAccountRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	bob := activeUser("bob", domain.UserTypeUser)
	bob.Status = domain.UserStatusInactive
	app := newGateApp(t, tm, &fakeStore{users: map[string]*domain.User{"bob": bob}})

	tokenStr, _, err := tm.Issue("bob", 1, domain.UserTypeUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_StoreErrorFailsClosed(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGateApp(t, tm, &fakeStore{err: errors.New("connection refused")})

	tokenStr, _, err := tm.Issue("alice", 1, domain.UserTypeAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/venues/42", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_AuthorityGuard(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	store := &fakeStore{users: map[string]*domain.User{
		"alice": activeUser("alice", domain.UserTypeAdmin),
		"carol": activeUser("carol", domain.UserTypeUser),
	}}
	app := newGateApp(t, tm, store)

	adminToken, _, err := tm.Issue("alice", 1, domain.UserTypeAdmin)
	require.NoError(t, err)
	userToken, _, err := tm.Issue("carol", 2, domain.UserTypeUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGate_RoleGrantsAuthority(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	store := &fakeStore{users: map[string]*domain.User{
		"dave": activeUser("dave", domain.UserTypeUser, domain.Role{Code: "ADMIN"}),
	}}
	app := newGateApp(t, tm, store)

	tokenStr, _, err := tm.Issue("dave", 3, domain.UserTypeUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClaims_RemainingLifetime(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	tokenStr, _, err := tm.Issue("alice", 1, domain.UserTypeUser)
	require.NoError(t, err)

	claims, err := tm.Parse(tokenStr)
	require.NoError(t, err)
	remaining := claims.RemainingLifetime()
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)

	var empty Claims
	assert.Equal(t, time.Duration(0), empty.RemainingLifetime())
}
