// Package main is the entrypoint for the Taskmate API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/taskmate/taskmate/internal/auth"
	"github.com/taskmate/taskmate/internal/cache"
	"github.com/taskmate/taskmate/internal/config"
	"github.com/taskmate/taskmate/internal/handler"
	"github.com/taskmate/taskmate/internal/mail"
	"github.com/taskmate/taskmate/internal/metrics"
	"github.com/taskmate/taskmate/internal/middleware"
	"github.com/taskmate/taskmate/internal/repository"
	"github.com/taskmate/taskmate/internal/server"
	"github.com/taskmate/taskmate/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database", slog.String("database_url", redactURL(cfg.DatabaseURL)))

	// Redis is optional. The interfaces below stay nil without it so the
	// middleware sees "not configured" rather than a nil *cache.Cache.
	var (
		cacheClient *cache.Cache
		denylist    middleware.Denylist
		revoker     handler.TokenRevoker
		limiter     middleware.LoginLimiter
		cacheHealth handler.HealthChecker
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			_ = store.Close(ctx)
			os.Exit(1)
		}
		denylist, revoker, limiter, cacheHealth = cacheClient, cacheClient, cacheClient, cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set; logout revocation and login rate limiting are disabled")
	}

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer = mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		logger.Warn("SMTP_HOST not set; OTP mails are written to the log")
		mailer = mail.NewLogSender(logger)
	}

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.SessionTTL)
	cookie := auth.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.IsProduction()}
	recorder := metrics.NewInMemory()

	userService := service.NewUserService(store, mailer, tokens, recorder, service.Options{
		OTPValidity:   cfg.OTPValidity(),
		RefreshOnRead: cfg.SessionRefreshOnRead,
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	router := handler.NewRouter(handler.RouterConfig{
		Logger: logger,
		Account: handler.NewAccountHandler(handler.AccountConfig{
			Service: userService,
			Logger:  logger,
			Cookie:  cookie,
			Tokens:  tokens,
			Revoker: revoker,
		}),
		Tasks:       handler.NewTaskHandler(userService, logger),
		Health:      handler.NewHealthHandler(store, cacheHealth),
		Metrics:     handler.NewMetricsHandler(recorder),
		Security:    middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()},
		CORS:        corsCfg,
		MaxBodySize: cfg.MaxRequestBodySize,
		Session: middleware.SessionConfig{
			Logger:   logger,
			Tokens:   tokens,
			Cookie:   cookie,
			Denylist: denylist,
			Users:    store,
		},
		RateLimit: middleware.RateLimitConfig{
			Logger:    logger,
			Limiter:   limiter,
			Recorder:  recorder,
			Enabled:   cfg.RateLimitLoginEnabled,
			PerMinute: cfg.RateLimitLoginPerMinute,
			Burst:     cfg.RateLimitLoginBurst,
		},
	})

	srv := server.New(router, server.Config{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Registered first, closed last.
	srv.OnShutdown("store", store.Close)
	if cacheClient != nil {
		srv.OnShutdown("redis", cacheClient.Close)
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// redactURL drops the password from a connection URL, keeping the user name.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError replaces every secret URL inside err's message with its
// redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
