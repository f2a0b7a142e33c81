package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/notify"
	"github.com/designemotion/transcript/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "transcript-server", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	debugFlag := cmd.Flags().Lookup("debug")
	require.NotNil(t, debugFlag)
	assert.Equal(t, "false", debugFlag.DefValue)
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := testutil.SetupTestConfig(t, t.TempDir(), "localhost:6379", "")

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 18080, cfg.Server.Port)
		assert.Equal(t, "localhost:6379", cfg.Redis.URL)
	})

	t.Run("broken file", func(t *testing.T) {
		path := testutil.SetupBrokenConfig(t, t.TempDir())

		_, err := loadConfig(path)
		assert.Error(t, err)
	})
}

func TestNewModelFactory(t *testing.T) {
	factory := newModelFactory(config.InferenceConfig{MaxRetryAttempts: 1})
	model := config.ModelConfig{Provider: "openai", Model: "gpt-4o"}

	_, err := factory("gpt4o", config.ProviderConfig{BaseURL: "https://api.openai.com/v1"}, model)
	assert.ErrorContains(t, err, `api key of provider "openai" is not set`)

	m, err := factory("gpt4o", config.ProviderConfig{BaseURL: "https://api.openai.com/v1", APIKey: "sk-test"}, model)
	require.NoError(t, err)
	assert.Equal(t, "gpt4o", m.Name())
	assert.NoError(t, m.Close())
}

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.MailConfig
		wantType any
		wantErr  bool
	}{
		{
			name:     "logs without endpoint",
			cfg:      config.MailConfig{ValidationURL: "https://example.test/v?k=%s"},
			wantType: &notify.LogMailer{},
		},
		{
			name:     "sends with endpoint",
			cfg:      config.MailConfig{Endpoint: "https://mail.example.test/send", ValidationURL: "https://example.test/v?k=%s"},
			wantType: &notify.HTTPMailer{},
		},
		{
			name:    "missing template file",
			cfg:     config.MailConfig{ValidationURL: "https://example.test/v?k=%s", Template: "/nonexistent/mail.tmpl"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newNotifier(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, got)
		})
	}
}

func TestWire(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("OPENROUTER_API_KEY", "sk-openrouter")
	t.Setenv("ADMIN_TOKEN", "")

	mr, store := testutil.NewKVStore(t)
	cfg, err := loadConfig(testutil.SetupTestConfig(t, t.TempDir(), mr.Addr(), ""))
	require.NoError(t, err)

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { _ = db.Close() })

	svc, err := wire(cfg, store, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.routes.Close() })

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("metrics include runtime collectors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("validation errors are localized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/transcript", strings.NewReader(`{"email":"a@example.com","key":"k1","lang":"fr"}`))
		rec := httptest.NewRecorder()
		svc.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid_request","message":"url invalide : is required."}`, rec.Body.String())
	})

	t.Run("admin routes are not mounted without a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/cache", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("redis outage fails the health check", func(t *testing.T) {
		mr.SetError("ERR simulated outage")
		defer mr.SetError("")

		rec := httptest.NewRecorder()
		svc.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis"`)
	})
}
