package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskmate/taskmate/internal/cache"
	"github.com/taskmate/taskmate/internal/metrics"
)

// MessageRateLimited is returned when a client exceeds the login rate limit.
const MessageRateLimited = "Too many login attempts, please try again later"

// LoginLimiter consumes one login attempt for a client.
type LoginLimiter interface {
	CheckLoginRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for the login rate limiter.
type RateLimitConfig struct {
	Logger    *slog.Logger
	Limiter   LoginLimiter
	Recorder  metrics.Recorder
	Enabled   bool
	PerMinute int
	Burst     int
}

// RateLimitLogin returns middleware that limits login attempts per client IP.
// It is a pass-through when disabled or when no limiter is configured.
func RateLimitLogin(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			result, err := cfg.Limiter.CheckLoginRateLimit(r.Context(), ip, cfg.PerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Error("login rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				cfg.Recorder.IncLogin(metrics.LoginRateLimited)
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "login"),
					slog.Int("retry_after_seconds", result.RetryAfterSeconds()),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfterSeconds()))
				writeError(w, http.StatusTooManyRequests, MessageRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's client address without the port.
// Proxy headers are resolved into RemoteAddr by chi's RealIP middleware
// earlier in the chain.
func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
