package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurity(t *testing.T) {
	tests := []struct {
		name        string
		isDev       bool
		header      string
		wantPresent bool
		wantValue   string
	}{
		{"nosniff", false, "X-Content-Type-Options", true, "nosniff"},
		{"frame options", false, "X-Frame-Options", true, "DENY"},
		{"referrer policy", false, "Referrer-Policy", true, "strict-origin-when-cross-origin"},
		{"csp", false, "Content-Security-Policy", true, "default-src 'none'; frame-ancestors 'none'"},
		{"coop", false, "Cross-Origin-Opener-Policy", true, "same-origin"},
		{"corp", false, "Cross-Origin-Resource-Policy", true, "same-origin"},
		{"no store", false, "Cache-Control", true, "no-store"},
		{"hsts in production", false, "Strict-Transport-Security", true, "max-age=31536000; includeSubDomains"},
		{"no hsts in development", true, "Strict-Transport-Security", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Security(SecurityConfig{IsDevelopment: tt.isDev})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			got := rec.Header().Get(tt.header)
			if tt.wantPresent && got != tt.wantValue {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.wantValue)
			}
			if !tt.wantPresent && got != "" {
				t.Errorf("%s should not be set, got %q", tt.header, got)
			}
		})
	}
}

func TestMaxBodySize(t *testing.T) {
	const limit = 16

	handler := MaxBodySize(limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "read failed", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("within limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"otp":1}`)))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("declared length too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", limit+1))))
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
		var body errorEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Success || body.Message != "Request body too large" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("streamed body too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("x", limit*2))))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
	})
}
