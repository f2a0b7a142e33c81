package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/i18n"
	"github.com/designemotion/transcript/internal/inference"
	"github.com/designemotion/transcript/internal/inference/openai"
	"github.com/designemotion/transcript/internal/kvstore"
	"github.com/designemotion/transcript/internal/ledger"
	"github.com/designemotion/transcript/internal/metrics"
	"github.com/designemotion/transcript/internal/notify"
	"github.com/designemotion/transcript/internal/orchestrator"
	"github.com/designemotion/transcript/internal/ratelimit"
	"github.com/designemotion/transcript/internal/registration"
	"github.com/designemotion/transcript/internal/server"
	"github.com/designemotion/transcript/internal/ticket"
	"github.com/designemotion/transcript/internal/transcript"
)

type service struct {
	handler http.Handler
	routes  *inference.Routes
}

// wire builds the HTTP handler on top of opened stores.
func wire(cfg *config.Config, store *kvstore.RedisStore, db *sqlx.DB) (*service, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	localizer, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("i18n.New() > %w", err)
	}

	routes, err := inference.NewRoutes(cfg.Inference, newModelFactory(cfg.Inference))
	if err != nil {
		return nil, fmt.Errorf("inference.NewRoutes() > %w", err)
	}

	notifier, err := newNotifier(cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("newNotifier() > %w", err)
	}

	accounts := ledger.New(ledger.NewDBRepository(db), cfg.Ledger)
	cache := transcript.NewCache(store, cfg.Cache.TranscriptTTL)
	transcripts := orchestrator.NewService(
		accounts,
		cache,
		ticket.NewStore(store, cfg.Cache.TicketTTL),
		routes.Transcriber(),
		routes.Translator(),
		cfg.Ledger,
		orchestrator.WithMetrics(m),
	)

	handler := server.NewHandler(cfg.Server, server.Dependencies{
		Transcripts: transcripts,
		Limiter:     ratelimit.NewLimiter(store, cfg.RateLimit),
		Registrar:   registration.NewService(store, cfg.Cache.EmailValidationTTL, notifier, accounts),
		Cache:       cache,
		Localizer:   localizer,
		Metrics:     m,
		Gatherer:    registry,
		HealthChecks: map[string]server.HealthCheck{
			"redis": store.Ping,
			"mysql": db.PingContext,
		},
	})
	return &service{handler: server.NewRouter(handler), routes: routes}, nil
}

// newModelFactory builds OpenAI-compatible clients. OpenRouter speaks the
// same protocol, so every provider goes through the same client.
func newModelFactory(cfg config.InferenceConfig) inference.Factory {
	return func(name string, provider config.ProviderConfig, model config.ModelConfig) (inference.Model, error) {
		if provider.APIKey == "" {
			return nil, fmt.Errorf("api key of provider %q is not set", model.Provider)
		}
		return openai.NewClient(name, provider, model, cfg.MaxRetryAttempts, cfg.Timeout), nil
	}
}

// newNotifier sends validation mails through the mail API, or only logs them
// when no endpoint is configured.
func newNotifier(cfg config.MailConfig) (registration.Notifier, error) {
	if cfg.Endpoint == "" {
		slog.Default().Warn("mail.endpoint is not set; validation mails are logged, not sent")
		return notify.NewLogMailer(cfg)
	}
	return notify.NewHTTPMailer(cfg)
}
