package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/venue-service/internal/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	tokenStr, expiresAt, err := tm.Issue("alice", 42, domain.UserTypeAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.UserTypeAdmin, claims.UserType)
	assert.NotEmpty(t, claims.ID)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenManager_UniqueTokenIDs(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	first, _, err := tm.Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)
	second, _, err := tm.Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)

	firstClaims, err := tm.Parse(first)
	require.NoError(t, err)
	secondClaims, err := tm.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)

	tokenStr, _, err := tm.Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)

	_, err = other.Parse(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, other.IsValid(tokenStr))
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.False(t, tm.IsValid("not-a-token"))
	assert.False(t, tm.IsValid(""))
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	tokenStr := issueExpired(t, tm, "alice", 42)

	_, err := tm.Parse(tokenStr)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.False(t, tm.IsValid(tokenStr))
}

func TestTokenManager_IsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	fresh, _, err := tm.Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)
	assert.False(t, tm.IsExpired(fresh))

	assert.True(t, tm.IsExpired(issueExpired(t, tm, "alice", 42)))
	assert.True(t, tm.IsExpired("garbage"))
}

func TestTokenManager_IsExpired_IgnoresSignature(t *testing.T) {
	// Expiry is read without verifying the signature, so a token signed
	// with a different secret is still assessed on its exp claim alone.
	other := NewTokenManager("another-secret", time.Hour)
	fresh, _, err := other.Issue("alice", 42, domain.UserTypeUser)
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", time.Hour)
	assert.False(t, tm.IsExpired(fresh))
	assert.True(t, tm.IsExpired(issueExpired(t, other, "alice", 42)))
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokenManager("s", 0).TTL())
	assert.Equal(t, 24*time.Hour, NewTokenManager("s", -time.Hour).TTL())
	assert.Equal(t, time.Minute, NewTokenManager("s", time.Minute).TTL())
}

// issueExpired signs a token with the manager's secret whose expiry is
// already in the past.
func issueExpired(t *testing.T, tm *TokenManager, username string, userID int64) string {
	t.Helper()
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		UserType: domain.UserTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        "expired-token",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	require.NoError(t, err)
	return tokenStr
}
