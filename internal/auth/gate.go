package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/domain"
	"github.com/spec-kit/venue-service/internal/observability"
)

const principalKey = "auth_principal"

const bearerPrefix = "Bearer "

// Gate terminal states, recorded as metrics labels.
const (
	OutcomeSkipped       = "skipped"
	OutcomeAuthenticated = "authenticated"
	OutcomeRejected      = "rejected"
)

// CredentialStore looks up the account behind a token subject.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Principal represents the authenticated caller.
type Principal struct {
	User        *domain.User
	Authorities []string
}

// Gate is the per-request authentication middleware. It either skips public
// paths, attaches an authenticated principal, or attaches nothing; it never
// terminates the request itself. Unauthenticated requests are turned away
// later by the route guards, so every failure converges to the same
// access-denied response.
type Gate struct {
	tokens   *TokenManager
	store    CredentialStore
	revoked  *RevocationList
	policies *PolicyTable
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewGate constructs the middleware.
func NewGate(tokens *TokenManager, store CredentialStore, revoked *RevocationList, policies *PolicyTable, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	if policies == nil {
		policies = NewPolicyTable(DefaultSkipPolicies()...)
	}
	return &Gate{
		tokens:   tokens,
		store:    store,
		revoked:  revoked,
		policies: policies,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handle runs the authentication attempt for one request and always passes
// the request on. Any panic or unexpected store error is logged and treated
// like a failed authentication: fail closed, never fail open.
func (g *Gate) Handle(c *fiber.Ctx) error {
	if g.policies.ShouldSkip(c.Path()) {
		g.metrics.RecordAuthOutcome(OutcomeSkipped)
		return c.Next()
	}

	if principal := g.authenticate(c); principal != nil {
		c.Locals(principalKey, principal)
		g.metrics.RecordAuthOutcome(OutcomeAuthenticated)
	} else {
		g.metrics.RecordAuthOutcome(OutcomeRejected)
	}
	return c.Next()
}

// authenticate resolves the bearer token to a principal, or nil when any
// step fails. Failure causes are distinguished in logs only.
func (g *Gate) authenticate(c *fiber.Ctx) (principal *Principal) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic during authentication", zap.Any("panic", r), zap.String("path", c.Path()))
			principal = nil
		}
	}()

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return nil
	}

	claims, err := g.tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			g.logger.Debug("expired token", zap.String("path", c.Path()))
		} else {
			g.logger.Warn("malformed token", zap.String("path", c.Path()))
		}
		return nil
	}
	if claims.Subject == "" {
		g.logger.Warn("token without subject", zap.String("path", c.Path()))
		return nil
	}

	if g.revoked.IsRevoked(c.Context(), claims.ID) {
		g.logger.Info("revoked token", zap.String("username", claims.Subject))
		return nil
	}

	user, err := g.store.GetByUsername(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Warn("token subject not found", zap.String("username", claims.Subject))
		} else {
			g.logger.Error("credential store lookup failed", zap.String("username", claims.Subject), zap.Error(err))
		}
		return nil
	}
	if user.Status != domain.UserStatusActive {
		g.logger.Warn("inactive account rejected",
			zap.String("username", user.Username),
			zap.String("status", string(user.Status)))
		return nil
	}

	return &Principal{
		User:        user,
		Authorities: ResolveAuthorities(user.UserType, user.Roles),
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RemainingLifetime returns how long the claims stay valid from now.
func (cl *Claims) RemainingLifetime() time.Duration {
	if cl.ExpiresAt == nil {
		return 0
	}
	return time.Until(cl.ExpiresAt.Time)
}
