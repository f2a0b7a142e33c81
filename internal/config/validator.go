package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(validateInference, InferenceConfig{})

	custom := map[string]string{
		"model_ref":    "{0} must name a model declared under inference.models",
		"provider_ref": "{0} must name a provider declared under inference.providers",
		"prompt":       "{0} must not be empty",
	}
	for tag, text := range custom {
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), strings.TrimPrefix(fe.Namespace(), "Config."))
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return validate, trans, nil
}

// validateInference checks the references between routes, models and providers,
// and that every model used by a route carries the prompt that route needs.
func validateInference(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(InferenceConfig)

	checkRoute := func(route RouteConfig, name string, prompt func(PromptsConfig) string) {
		for field, model := range map[string]string{"main": route.Main, "secondary": route.Secondary} {
			if model == "" {
				continue
			}
			mc, ok := cfg.Models[model]
			if !ok {
				sl.ReportError(model, name+"."+field, field, "model_ref", "")
				continue
			}
			if strings.TrimSpace(prompt(mc.Prompts)) == "" {
				sl.ReportError(model, "models."+model+".prompts."+name, name, "prompt", "")
			}
		}
	}
	checkRoute(cfg.Transcript, "transcript", func(p PromptsConfig) string { return p.Transcript })
	checkRoute(cfg.Translate, "translate", func(p PromptsConfig) string { return p.Translate })

	for name, mc := range cfg.Models {
		if mc.Provider == "" {
			continue
		}
		if _, ok := cfg.Providers[mc.Provider]; !ok {
			sl.ReportError(mc.Provider, "models."+name+".provider", "provider", "provider_ref", "")
		}
	}
}
