package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revocationKeyPrefix = "auth:revoked:"

// RevocationList tracks revoked token ids in Redis. Each entry lives exactly
// as long as the token it revokes, so the set cleans itself up.
type RevocationList struct {
	client redis.Cmdable
	logger *zap.Logger
}

// NewRevocationList builds a list over the given Redis client. A nil client
// yields a list that revokes nothing and reports nothing revoked.
func NewRevocationList(client redis.Cmdable, logger *zap.Logger) *RevocationList {
	return &RevocationList{client: client, logger: logger}
}

// Revoke marks a token id as revoked for the token's remaining lifetime.
// Tokens already past expiry need no entry.
func (r *RevocationList) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if r.client == nil || jti == "" || remaining <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKeyPrefix+jti, "1", remaining).Err()
}

// IsRevoked reports whether a token id is on the list. A Redis outage is
// logged and reported as not revoked: signature and expiry checks still
// gate access, and treating the outage as a blanket revocation would lock
// out every caller.
func (r *RevocationList) IsRevoked(ctx context.Context, jti string) bool {
	if r.client == nil || jti == "" {
		return false
	}
	count, err := r.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		if r.logger != nil {
			r.logger.Error("revocation lookup failed", zap.String("jti", jti), zap.Error(err))
		}
		return false
	}
	return count > 0
}
