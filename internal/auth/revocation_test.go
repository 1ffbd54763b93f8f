package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRevocationList_NilClient(t *testing.T) {
	list := NewRevocationList(nil, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, list.Revoke(ctx, "some-jti", time.Hour))
	assert.False(t, list.IsRevoked(ctx, "some-jti"))
}

func TestRevocationList_EmptyAndExpiredInputs(t *testing.T) {
	list := NewRevocationList(nil, zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, list.Revoke(ctx, "", time.Hour))
	assert.NoError(t, list.Revoke(ctx, "jti", 0))
	assert.NoError(t, list.Revoke(ctx, "jti", -time.Minute))
	assert.False(t, list.IsRevoked(ctx, ""))
}
