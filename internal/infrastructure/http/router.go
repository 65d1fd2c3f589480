package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/infrastructure/http/handlers"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	Users       *handlers.UsersHandler
	Countries   *handlers.CountriesHandler
	Health      *handlers.HealthHandler
	Pipeline    *Pipeline
	Log         zerolog.Logger
	Secure      func(http.Handler) http.Handler
	CORS        func(http.Handler) http.Handler
	IPRateLimit func(http.Handler) http.Handler
	Metrics     bool // expose /metrics
}

// NewRouter builds the chi router. Every application handler goes through
// the error pipeline; nothing else writes failure responses.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	wrap := cfg.Pipeline.Wrap

	r.Route("/users", func(r chi.Router) {
		r.Get("/", wrap(cfg.Users.List))
		r.Post("/", wrap(cfg.Users.Register))
		r.Post("/login", wrap(cfg.Users.Login))
	})

	r.Route("/countries", func(r chi.Router) {
		r.Get("/", wrap(cfg.Countries.List))
		r.Post("/", wrap(cfg.Countries.Create))
		r.Get("/{id}", wrap(cfg.Countries.Get))
		r.Put("/{id}", wrap(cfg.Countries.Replace))
		r.Delete("/{id}", wrap(cfg.Countries.Delete))
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
