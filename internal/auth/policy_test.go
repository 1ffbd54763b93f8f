package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPath_Literal(t *testing.T) {
	assert.True(t, MatchPath("/auth/login", "/auth/login"))
	assert.False(t, MatchPath("/auth/login", "/auth/login/extra"))
	assert.False(t, MatchPath("/auth/login", "/auth"))
}

func TestMatchPath_TrailingWildcard(t *testing.T) {
	assert.True(t, MatchPath("/health/**", "/health"))
	assert.True(t, MatchPath("/health/**", "/health/ready"))
	assert.True(t, MatchPath("/health/**", "/health/ready/deep"))
	assert.False(t, MatchPath("/health/**", "/healthz"))
	assert.False(t, MatchPath("/health/**", "/venues/1"))
}

func TestPolicyTable_FirstMatchWins(t *testing.T) {
	table := NewPolicyTable(
		RoutePolicy{Pattern: "/venues/popular", Action: ActionSkipAuth},
		RoutePolicy{Pattern: "/venues/**", Action: ActionRequireAuthority, Authority: "ROLE_USER"},
	)

	policy, ok := table.Match("/venues/popular")
	assert.True(t, ok)
	assert.Equal(t, ActionSkipAuth, policy.Action)

	policy, ok = table.Match("/venues/42")
	assert.True(t, ok)
	assert.Equal(t, ActionRequireAuthority, policy.Action)
	assert.Equal(t, "ROLE_USER", policy.Authority)

	_, ok = table.Match("/merchants")
	assert.False(t, ok)
}

func TestPolicyTable_ShouldSkip_Defaults(t *testing.T) {
	table := NewPolicyTable(DefaultSkipPolicies()...)

	skipped := []string{
		"/auth/login",
		"/auth/register",
		"/auth/dev/reset-password",
		"/health/live",
		"/health/ready",
		"/swagger-ui/index.html",
		"/v3/api-docs/venues",
		"/favicon.ico",
		"/error",
		"/ws/occupancy/7",
	}
	for _, path := range skipped {
		assert.True(t, table.ShouldSkip(path), path)
	}

	guarded := []string{
		"/auth/logout",
		"/auth/user/info",
		"/venues/42",
		"/reservations",
		"/users",
	}
	for _, path := range guarded {
		assert.False(t, table.ShouldSkip(path), path)
	}
}
