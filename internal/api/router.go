package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

const maxRequestBody = 1 << 20

// RouterConfig holds the router's auth and rate limit settings.
type RouterConfig struct {
	// Token enables bearer auth on the planning routes when non-empty.
	Token              string
	RateLimitPerMinute int
}

// NewRouter builds and returns the Chi router with all routes configured.
// The health endpoint is never authenticated.
func NewRouter(handlers *Handlers, cfg RouterConfig, cache pinger, log *slog.Logger) *chi.Mux {
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 60
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(cache, log))

	r.Group(func(r chi.Router) {
		if cfg.Token != "" {
			r.Use(BearerAuth(cfg.Token))
		}
		r.Use(maxBodyBytes(maxRequestBody))

		r.Post("/api/gemini", handlers.Generate)
		r.Post("/api/v1/trips/plan", handlers.PlanTrip)
		r.Post("/api/v1/trips/chat", handlers.Chat)
		r.Post("/api/v1/trips/speech", handlers.SpeechScript)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
