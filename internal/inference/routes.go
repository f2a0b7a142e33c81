package inference

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/designemotion/transcript/internal/config"
)

// Factory builds the client of one declared model.
type Factory func(name string, provider config.ProviderConfig, model config.ModelConfig) (Model, error)

// Routes resolves which model serves transcription and which serves translation.
// The selection is fixed at construction. Switching to a secondary model is an
// operator decision made in configuration; a failing model is never replaced
// automatically.
type Routes struct {
	transcriber Model
	translator  Model
	models      []Model
}

func NewRoutes(cfg config.InferenceConfig, newModel Factory) (*Routes, error) {
	built := make(map[string]Model)
	r := &Routes{}

	resolve := func(name string) (Model, error) {
		if m, ok := built[name]; ok {
			return m, nil
		}
		mc, ok := cfg.Models[name]
		if !ok {
			return nil, fmt.Errorf("model %q is not declared", name)
		}
		pc, ok := cfg.Providers[mc.Provider]
		if !ok {
			return nil, fmt.Errorf("provider %q of model %q is not declared", mc.Provider, name)
		}
		m, err := newModel(name, pc, mc)
		if err != nil {
			return nil, fmt.Errorf("newModel(%s) > %w", name, err)
		}
		built[name] = m
		r.models = append(r.models, m)
		return m, nil
	}

	var err error
	if r.transcriber, err = resolve(cfg.Transcript.Selected()); err != nil {
		return nil, errors.Join(err, r.Close())
	}
	if r.translator, err = resolve(cfg.Translate.Selected()); err != nil {
		return nil, errors.Join(err, r.Close())
	}

	slog.Default().Info("inference routes",
		"transcript", r.transcriber.Name(),
		"translate", r.translator.Name(),
	)
	return r, nil
}

func (r *Routes) Transcriber() Transcriber { return r.transcriber }

func (r *Routes) Translator() Translator { return r.translator }

// Close releases every model client built for the routes.
func (r *Routes) Close() error {
	var errs []error
	for _, m := range r.models {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
