package auth

import (
	"net/http"
	"time"
)

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SetSessionCookie writes token as an HTTP-only cookie expiring with it.
func SetSessionCookie(w http.ResponseWriter, cfg CookieConfig, token *Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		MaxAge:   int(time.Until(token.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an already-expired
// empty value.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionTokenFromRequest returns the session cookie value, or "" if absent.
func SessionTokenFromRequest(r *http.Request, cfg CookieConfig) string {
	c, err := r.Cookie(cfg.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
