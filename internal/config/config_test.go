package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setRequired sets the required variables and points CONFIG_FILE at a path
// that does not exist so a developer's local dotenv file cannot leak in.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_WithRequiredVars(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DatabaseURL != "mongodb://localhost:27017" {
		t.Errorf("expected DatabaseURL to be set, got %s", cfg.DatabaseURL)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWTSecret to be set, got %s", cfg.JWTSecret)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default Port 8080, got %d", cfg.Port)
	}
	if cfg.OTPExpire != 5 {
		t.Errorf("expected default OTPExpire 5, got %d", cfg.OTPExpire)
	}
	if cfg.SessionTTL != 72*time.Hour {
		t.Errorf("expected default SessionTTL 72h, got %s", cfg.SessionTTL)
	}
	if cfg.SessionCookieName != "token" {
		t.Errorf("expected default cookie name 'token', got %s", cfg.SessionCookieName)
	}
	if !cfg.SessionRefreshOnRead {
		t.Error("expected SessionRefreshOnRead to default to true")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}
	if cfg.RedisURL != "" {
		t.Errorf("expected RedisURL to be empty by default, got %s", cfg.RedisURL)
	}
}

func TestLoad_ReadsDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	content := "DATABASE_URL=memory://\nJWT_SECRET=from-file\nOTP_EXPIRE=10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	// Values already in the environment win over the file.
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OTP_EXPIRE", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("OTP_EXPIRE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DatabaseURL != "memory://" {
		t.Errorf("expected DatabaseURL from file, got %s", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("expected JWTSecret from environment, got %s", cfg.JWTSecret)
	}
	if cfg.OTPValidity() != 10*time.Minute {
		t.Errorf("expected OTP validity 10m, got %s", cfg.OTPValidity())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid dev", Config{AppEnv: "development", OTPExpire: 5, SessionTTL: time.Hour, JWTSecret: "x"}, false},
		{"zero otp expire", Config{OTPExpire: 0, SessionTTL: time.Hour}, true},
		{"zero session ttl", Config{OTPExpire: 5, SessionTTL: 0}, true},
		{"short secret in production", Config{AppEnv: "production", OTPExpire: 5, SessionTTL: time.Hour, JWTSecret: "short"}, true},
		{"long secret in production", Config{AppEnv: "production", OTPExpire: 5, SessionTTL: time.Hour, JWTSecret: "0123456789abcdef0123456789abcdef"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com, ,https://b.example.com "}

	got := cfg.GetCORSAllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", got)
	}

	if (&Config{}).GetCORSAllowedOrigins() != nil {
		t.Error("expected nil origins for empty config")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to return true")
	}
}
