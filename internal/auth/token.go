package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/venue-service/internal/domain"
)

// ErrMalformedToken covers any structurally broken, unsigned, or
// wrongly-signed token. Expiry is reported separately via jwt.ErrTokenExpired
// so the gate can log the two cases apart.
var ErrMalformedToken = errors.New("malformed token")

// TokenManager issues and validates signed bearer tokens. The TTL is fixed at
// construction; callers cannot request a different lifetime per token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the token payload: subject name, numeric user id, and the
// account's role tag.
type Claims struct {
	UserID   int64           `json:"uid"`
	UserType domain.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the given account.
func (tm *TokenManager) Issue(username string, userID int64, userType domain.UserType) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates signature and expiry and returns the claims. Expired
// tokens return an error wrapping jwt.ErrTokenExpired; everything else is
// reported as ErrMalformedToken.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		return nil, ErrMalformedToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// IsValid reports whether the token has a good signature, is unexpired, and
// carries a non-empty subject. Pure function of the token, the secret, and
// the clock; it performs no I/O and never panics outward.
func (tm *TokenManager) IsValid(tokenStr string) bool {
	claims, err := tm.Parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.Subject != ""
}

// IsExpired reports whether the token's expiry is in the past, regardless of
// signature validity. Tokens that cannot be decoded at all are reported as
// expired: freshness cannot be proven for them.
func (tm *TokenManager) IsExpired(tokenStr string) bool {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
