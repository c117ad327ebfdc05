package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskmate/taskmate/internal/middleware"
)

// RouterConfig collects everything the HTTP routes depend on.
type RouterConfig struct {
	Logger  *slog.Logger
	Account *AccountHandler
	Tasks   *TaskHandler
	Health  *HealthHandler
	Metrics *MetricsHandler

	Security    middleware.SecurityConfig
	CORS        middleware.CORSConfig
	MaxBodySize int64
	Session     middleware.SessionConfig
	RateLimit   middleware.RateLimitConfig
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	h := New()
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	// Operational endpoints
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.Get("/metrics", cfg.Metrics.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", cfg.Account.Register)
		r.With(middleware.RateLimitLogin(cfg.RateLimit)).Post("/login", cfg.Account.Login)
		r.Get("/logout", cfg.Account.Logout)

		// Session required
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session))

			r.Post("/verify", cfg.Account.Verify)
			r.Post("/verify/resend", cfg.Account.ResendOTP)
			r.Get("/profile", cfg.Account.Profile)

			r.Post("/addTask", cfg.Tasks.Add)
			r.Put("/task/{taskId}", cfg.Tasks.Toggle)
			r.Delete("/task/{taskId}", cfg.Tasks.Remove)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
