// Package server exposes the transcript service over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/i18n"
	"github.com/designemotion/transcript/internal/metrics"
	"github.com/designemotion/transcript/internal/orchestrator"
	"github.com/designemotion/transcript/internal/registration"
	"github.com/designemotion/transcript/internal/transcript"
)

//go:generate mockgen -source=server.go -destination=../mocks/server/mock_server.go -package=mock_server

type Transcripts interface {
	RequestTranscript(ctx context.Context, req orchestrator.TranscriptRequest) (orchestrator.Decision, error)
	CompleteTranscriptWithImage(ctx context.Context, req orchestrator.ImageRequest) (string, error)
}

type Limiter interface {
	ShouldBlock(ctx context.Context, identifier string) (bool, error)
}

type Registrar interface {
	Issue(ctx context.Context, email, key, tool string) (string, error)
	Redeem(ctx context.Context, validationKey string) (*registration.Validation, error)
}

type CacheAdmin interface {
	URLs(ctx context.Context) ([]string, error)
	Entry(ctx context.Context, url string) (*transcript.Entry, error)
	Remove(ctx context.Context, url string) error
	Clear(ctx context.Context) (int, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Dependencies struct {
	Transcripts  Transcripts
	Limiter      Limiter
	Registrar    Registrar
	Cache        CacheAdmin
	Localizer    *i18n.Localizer
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	HealthChecks map[string]HealthCheck
}

type Handler struct {
	Dependencies
	cfg config.ServerConfig
}

func NewHandler(cfg config.ServerConfig, deps Dependencies) *Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New(nil)
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.NewRegistry()
	}
	return &Handler{Dependencies: deps, cfg: cfg}
}

// NewRouter registers the routes. The admin routes exist only when an admin
// token is configured.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(h.cfg.CORS.AllowedOrigins))
	r.Use(h.accessLogMiddleware)

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if h.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.cfg.RequestTimeout))
		}
		r.Get("/transcript", h.transcript)
		r.Post("/transcript", h.transcript)
		r.Post("/image-transcript", h.imageTranscript)
		r.Post("/validation-mail", h.validationMail)
		r.Get("/register-key", h.registerKey)
		r.Post("/register-key", h.registerKey)

		if h.cfg.AdminToken != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(adminAuthMiddleware(h.cfg.AdminToken))
				r.Get("/cache", h.listCache)
				r.Delete("/cache", h.clearCache)
			})
		}
	})

	return r
}
