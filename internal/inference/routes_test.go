package inference_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/inference"
	mock_inference "github.com/designemotion/transcript/internal/mocks/inference"
)

func testInferenceConfig() config.InferenceConfig {
	return config.InferenceConfig{
		Providers: map[string]config.ProviderConfig{
			"openai":     {BaseURL: "https://api.openai.com/v1"},
			"openrouter": {BaseURL: "https://openrouter.ai/api/v1"},
		},
		Models: map[string]config.ModelConfig{
			"gpt4o":    {Provider: "openai", Model: "gpt-4o"},
			"gpt41-or": {Provider: "openrouter", Model: "openai/gpt-4.1"},
		},
		Transcript: config.RouteConfig{Main: "gpt41-or", Secondary: "gpt4o"},
		Translate:  config.RouteConfig{Main: "gpt4o", Secondary: "gpt41-or"},
	}
}

func TestNewRoutes(t *testing.T) {
	tests := []struct {
		name           string
		modify         func(cfg *config.InferenceConfig)
		wantTranscribe string
		wantTranslate  string
		wantBuilt      []string
		wantErr        string
	}{
		{
			name:           "main models",
			modify:         func(cfg *config.InferenceConfig) {},
			wantTranscribe: "gpt41-or",
			wantTranslate:  "gpt4o",
			wantBuilt:      []string{"gpt41-or", "gpt4o"},
		},
		{
			name: "operator toggles the transcript route",
			modify: func(cfg *config.InferenceConfig) {
				cfg.Transcript.UseSecondary = true
			},
			wantTranscribe: "gpt4o",
			wantTranslate:  "gpt4o",
			wantBuilt:      []string{"gpt4o"},
		},
		{
			name: "undeclared model",
			modify: func(cfg *config.InferenceConfig) {
				cfg.Translate.Main = "missing"
			},
			wantErr: `model "missing" is not declared`,
		},
		{
			name: "undeclared provider",
			modify: func(cfg *config.InferenceConfig) {
				cfg.Models["gpt41-or"] = config.ModelConfig{Provider: "anthropic", Model: "x"}
			},
			wantErr: `provider "anthropic" of model "gpt41-or" is not declared`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cfg := testInferenceConfig()
			tt.modify(&cfg)

			var built []string
			factory := func(name string, provider config.ProviderConfig, model config.ModelConfig) (inference.Model, error) {
				built = append(built, name)
				m := mock_inference.NewMockModel(ctrl)
				m.EXPECT().Name().Return(name).AnyTimes()
				m.EXPECT().Close().Return(nil).AnyTimes()
				return m, nil
			}

			routes, err := inference.NewRoutes(cfg, factory)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBuilt, built)
			assert.Equal(t, tt.wantTranscribe, routes.Transcriber().(inference.Model).Name())
			assert.Equal(t, tt.wantTranslate, routes.Translator().(inference.Model).Name())
			assert.NoError(t, routes.Close())
		})
	}
}

func TestNewRoutes_FactoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock_inference.NewMockModel(ctrl)
	first.EXPECT().Close().Return(nil)

	calls := 0
	factory := func(name string, provider config.ProviderConfig, model config.ModelConfig) (inference.Model, error) {
		calls++
		if calls == 1 {
			return first, nil
		}
		return nil, errors.New("invalid api key")
	}

	_, err := inference.NewRoutes(testInferenceConfig(), factory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newModel(gpt4o) > invalid api key")
}
