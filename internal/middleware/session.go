package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/model"
	"github.com/taskmate/taskmate/internal/repository"
)

// MessageLoginRequired is returned for every rejected session.
const MessageLoginRequired = "Please login first"

// TokenParser validates a session token.
type TokenParser interface {
	Parse(value string) (*auth.Identity, error)
}

// Denylist reports logged-out session tokens.
type Denylist interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup loads the account behind a session.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Tokens TokenParser
	Cookie auth.CookieConfig
	// Denylist is optional; without it logged-out tokens stay valid until
	// they expire.
	Denylist Denylist
	Users    UserLookup
}

// Session returns a middleware that admits only requests carrying a valid
// session cookie for an existing user. The caller's auth.Identity is placed
// in the request context.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reject := func(reason string) {
				cfg.Logger.Warn("session rejected",
					slog.String("reason", reason),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(ctx)),
				)
				writeError(w, http.StatusUnauthorized, MessageLoginRequired)
			}

			value := auth.SessionTokenFromRequest(r, cfg.Cookie)
			if value == "" {
				reject("missing_token")
				return
			}

			identity, err := cfg.Tokens.Parse(value)
			if err != nil {
				reject("invalid_token")
				return
			}

			if cfg.Denylist != nil {
				revoked, err := cfg.Denylist.IsTokenRevoked(ctx, identity.TokenID)
				if err != nil {
					// Fail open: the signature and expiry checks already passed.
					cfg.Logger.Error("session denylist check failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(ctx)),
					)
				} else if revoked {
					reject("revoked_token")
					return
				}
			}

			if _, err := cfg.Users.GetUserByID(ctx, identity.UserID); err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					reject("unknown_user")
					return
				}
				cfg.Logger.Error("session user lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(ctx)),
				)
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(ctx, identity)))
		})
	}
}
