package main

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"no credentials", "mongodb://localhost:27017/taskmate", "mongodb://localhost:27017/taskmate"},
		{"user and password", "mongodb://app:s3cret@db:27017/taskmate", "mongodb://app@db:27017/taskmate"},
		{"password only", "redis://:s3cret@localhost:6379/0", "redis://redacted@localhost:6379/0"},
		{"unparseable", "postgres://%zz", "[redacted]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redactURL(tt.raw); got != tt.want {
				t.Errorf("redactURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	secret := "postgres://app:s3cret@db:5432/taskmate"
	err := errors.New("dial " + secret + " failed: password=hunter2 rejected")

	got := sanitizeError(err, secret, "")
	if strings.Contains(got, "s3cret") || strings.Contains(got, "hunter2") {
		t.Errorf("secret leaked: %q", got)
	}
	if !strings.Contains(got, "postgres://app@db:5432/taskmate") {
		t.Errorf("redacted URL missing: %q", got)
	}
	if !strings.Contains(got, "password=redacted") {
		t.Errorf("password pattern not redacted: %q", got)
	}

	if sanitizeError(nil) != "" {
		t.Error("nil error should sanitize to empty string")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
