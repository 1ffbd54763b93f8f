package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/auth"
	"github.com/spec-kit/venue-service/internal/config"
	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/repository"
)

// ErrInvalidCredentials covers every login failure cause so callers cannot
// distinguish a wrong password from an unknown or disabled account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthResult bundles the outcome of a successful login, registration, or
// token refresh.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	ExpiresIn int64
}

// AuthService coordinates registration, login, and token lifecycle flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoked    *auth.RevocationList
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, revoked *auth.RevocationList, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		revoked:    revoked,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries self-registration fields.
type RegisterInput struct {
	Username string
	Password string
	RealName string
	Phone    string
	Email    string
	UserType string
}

// Register creates a new account and issues its first token. An unknown user
// type is logged and registered as a plain end-user rather than rejected.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, errors.New("username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	userType, known := domain.ParseUserType(input.UserType)
	if !known && input.UserType != "" {
		s.logger.Warn("unrecognized user type on registration, defaulting to USER",
			zap.String("username", input.Username),
			zap.String("user_type", input.UserType))
	}
	// Admin accounts are provisioned out of band, never via self-registration.
	if userType == domain.UserTypeAdmin {
		userType = domain.UserTypeUser
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		RealName:     input.RealName,
		Phone:        input.Phone,
		Email:        input.Email,
		UserType:     userType,
		Status:       domain.UserStatusActive,
		MemberLevel:  domain.MemberLevelBronze,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(user)
}

// Login authenticates an account by username and password.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		s.logger.Warn("login rejected for non-active account",
			zap.String("username", username),
			zap.String("status", string(user.Status)))
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.Warn("failed to record last login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return s.issueFor(user)
}

// Logout revokes the presented token for its remaining lifetime. An already
// invalid token needs no revocation and is not an error.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.tokenMgr.Parse(tokenStr)
	if err != nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.RemainingLifetime())
}

// Refresh exchanges a valid, unrevoked token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context, tokenStr string) (*AuthResult, error) {
	claims, err := s.tokenMgr.Parse(tokenStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if s.revoked.IsRevoked(ctx, claims.ID) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// CurrentUser resolves the account behind a valid token.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.tokenMgr.Parse(tokenStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// DevResetPassword force-sets a password without verifying the old one. Only
// reachable through the dev-only route prefix.
func (s *AuthService) DevResetPassword(ctx context.Context, username, newPassword string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueFor(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokenMgr.Issue(user.Username, user.ID, user.UserType)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(s.tokenMgr.TTL().Seconds()),
	}, nil
}
