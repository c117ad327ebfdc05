package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// revokedSessionPrefix is the Redis key prefix for revoked session token IDs.
const revokedSessionPrefix = "session:revoked:"

// ErrEmptyTokenID is returned when a revocation is requested without a token ID.
var ErrEmptyTokenID = errors.New("token id is required")

// RevokeToken marks a session token as logged out until it would have
// expired anyway. Tokens already past their expiry are not stored.
func (c *Cache) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	ttl := revocationTTL(until, c.now())
	if ttl <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, revokedSessionKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether a session token was logged out.
func (c *Cache) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := c.client.Exists(ctx, revokedSessionKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked session: %w", err)
	}
	return n > 0, nil
}

func revokedSessionKey(tokenID string) string {
	return revokedSessionPrefix + tokenID
}

// revocationTTL returns how long a revocation entry must live. Redis
// expirations are whole milliseconds, so anything shorter rounds up.
func revocationTTL(until, now time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl <= 0 {
		return 0
	}
	if ttl < time.Millisecond {
		return time.Millisecond
	}
	return ttl
}
