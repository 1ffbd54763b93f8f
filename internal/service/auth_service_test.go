package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/config"
	"github.com/spec-kit/venue-service/internal/domain"
)

func newAuthFixture() (*AuthService, *mockUserRepository) {
	users := &mockUserRepository{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			AccessTokenTTLHours: 1,
			BcryptCost:          bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, users, auth.NewRevocationList(nil, zap.NewNop()), zap.NewNop())
	return svc, users
}

func TestAuthService_Register(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	users.On("GetByUsername", ctx, "alice").Return(nil, pgx.ErrNoRows)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "s3cret",
		RealName: "Alice",
		UserType: "MERCHANT",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.UserTypeMerchant, result.User.UserType)
	assert.Equal(t, domain.UserStatusActive, result.User.Status)
	assert.NotEqual(t, "s3cret", result.User.PasswordHash)

	claims, err := svc.TokenManager().Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	users.On("GetByUsername", ctx, "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"})
	assert.Error(t, err)
}

func TestAuthService_Register_AdminDemotedToUser(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	users.On("GetByUsername", ctx, "mallory").Return(nil, pgx.ErrNoRows)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{Username: "mallory", Password: "pw", UserType: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeUser, result.User.UserType)
}

func TestAuthService_Register_UnknownTypeFallsBack(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	users.On("GetByUsername", ctx, "bob").Return(nil, pgx.ErrNoRows)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{Username: "bob", Password: "pw", UserType: "WIZARD"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeUser, result.User.UserType)
}

func TestAuthService_Login(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	alice := &domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: hash,
		UserType:     domain.UserTypeUser,
		Status:       domain.UserStatusActive,
	}
	users.On("GetByUsername", ctx, "alice").Return(alice, nil)
	users.On("UpdateLastLogin", ctx, int64(42), "10.0.0.1").Return(nil)

	result, err := svc.Login(ctx, "alice", "s3cret", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	users.AssertExpectations(t)
}

func TestAuthService_Login_FailuresAreUniform(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByUsername", ctx, "ghost").Return(nil, pgx.ErrNoRows)
	_, err = svc.Login(ctx, "ghost", "whatever", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	locked := &domain.User{ID: 7, Username: "bob", PasswordHash: hash, Status: domain.UserStatusLocked}
	users.On("GetByUsername", ctx, "bob").Return(locked, nil)
	_, err = svc.Login(ctx, "bob", "s3cret", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	active := &domain.User{ID: 8, Username: "carol", PasswordHash: hash, Status: domain.UserStatusActive}
	users.On("GetByUsername", ctx, "carol").Return(active, nil)
	_, err = svc.Login(ctx, "carol", "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout_InvalidTokenIsNoop(t *testing.T) {
	svc, _ := newAuthFixture()
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestAuthService_Refresh(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()

	alice := &domain.User{ID: 42, Username: "alice", UserType: domain.UserTypeUser, Status: domain.UserStatusActive}
	users.On("GetByUsername", ctx, "alice").Return(alice, nil)

	token, _, err := svc.TokenManager().Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)

	result, err := svc.Refresh(ctx, token)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
