package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitLoginPrefix is the Redis key prefix for login attempts per client IP.
	rateLimitLoginPrefix = "ratelimit:login:"
	// rateLimitLoginTTL bounds how long an idle bucket is kept.
	rateLimitLoginTTL = 120 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	Limit      int
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes one token atomically.
// Returns {allowed, retry_after_seconds, remaining_tokens}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'ts')
	local tokens = tonumber(state[1]) or burst
	local ts = tonumber(state[2]) or now

	tokens = math.min(burst, tokens + math.max(0, now - ts) * rate)

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HSET', key, 'tokens', tokens, 'ts', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckLoginRateLimit consumes one login attempt for the client IP.
// The IP is hashed so raw addresses are never stored.
func (c *Cache) CheckLoginRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*RateLimitResult, error) {
	if ratePerMinute <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst), Limit: burst}, nil
	}

	key := rateLimitLoginPrefix + hashIP(ip)
	ratePerSecond := float64(ratePerMinute) / 60.0

	return c.checkRateLimit(ctx, key, ratePerSecond, burst)
}

func (c *Cache) checkRateLimit(ctx context.Context, key string, rate float64, burst int) (*RateLimitResult, error) {
	now := float64(c.now().UnixMilli()) / 1000.0

	result, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		rate, burst, now, int(rateLimitLoginTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		// Fail open: a Redis outage must not lock every user out.
		slog.Warn("rate limit check failed, allowing request", "error", err)
		return &RateLimitResult{Allowed: true, Remaining: int64(burst), Limit: burst}, nil
	}

	return &RateLimitResult{
		Allowed:    result[0] == 1,
		Remaining:  result[2],
		Limit:      burst,
		RetryAfter: time.Duration(result[1]) * time.Second,
	}, nil
}

// RetryAfterSeconds rounds the retry delay up to whole seconds, never below one.
func (r *RateLimitResult) RetryAfterSeconds() int {
	secs := int(math.Ceil(r.RetryAfter.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// hashIP creates a truncated SHA256 hash of an IP address.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8])
}
