package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "venue-service", cfg.App.Name)
	assert.Equal(t, 24, cfg.Auth.AccessTokenTTLHours)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.False(t, cfg.Auth.DevRoutesEnabled)
	assert.Positive(t, cfg.CheckIn.PointsPerCheckIn)
	assert.Positive(t, cfg.CheckIn.MaxSession())
	assert.Positive(t, cfg.CheckIn.SweepInterval())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_HOURS", "2")
	t.Setenv("AUTH_DEV_ROUTES_ENABLED", "true")
	t.Setenv("CHECKIN_MAX_SESSION_MINUTES", "90")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.True(t, cfg.Auth.DevRoutesEnabled)
	assert.Equal(t, 90*time.Minute, cfg.CheckIn.MaxSession())
}

func TestAuthConfig_TTLFallback(t *testing.T) {
	assert.Equal(t, 24*time.Hour, AuthConfig{AccessTokenTTLHours: 0}.AccessTokenTTL())
	assert.Equal(t, 24*time.Hour, AuthConfig{AccessTokenTTLHours: -1}.AccessTokenTTL())
}
