// Package config validates loaded configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if cfg.Preferences.Mode != "" {
		if _, err := domain.ParseRunMode(cfg.Preferences.Mode); err != nil {
			return err
		}
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	if err := validateRoutes(cfg.Routes); err != nil {
		return err
	}
	if err := validateEvaluation(cfg.Evaluation); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Prompts.StoreFile) == "" {
		return fmt.Errorf("prompts.store_file must be set")
	}
	if cfg.Prompts.CacheSize < 0 {
		return fmt.Errorf("prompts.cache_size must be >= 0")
	}
	return nil
}

func validateModels(models []domain.ModelDefinition) error {
	seen := map[string]bool{}
	for i, model := range models {
		if model.Name == "" {
			return fmt.Errorf("models[%d].name must be set", i)
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s is defined twice", model.Name)
		}
		seen[model.Name] = true

		switch model.Kind() {
		case domain.ProviderKindOpenAI, domain.ProviderKindAnthropic, domain.ProviderKindOllama, domain.ProviderKindHTTP:
			if model.Endpoint == "" {
				return fmt.Errorf("model %s: endpoint must be set", model.Name)
			}
		case domain.ProviderKindGemini, domain.ProviderKindEcho:
		default:
			return fmt.Errorf("model %s: unknown provider %q", model.Name, model.Provider)
		}
		if model.Kind() != domain.ProviderKindEcho && model.ModelID == "" {
			return fmt.Errorf("model %s: model_id must be set", model.Name)
		}
	}
	return nil
}

func validateRoutes(routes domain.RouteSettings) error {
	switch domain.Framework(strings.ToLower(routes.Framework)) {
	case "", domain.FrameworkFastAPI, domain.FrameworkFlask:
		return nil
	default:
		return &domain.ConfigError{Field: "routes.framework", Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedFramework, routes.Framework)}
	}
}

func validateEvaluation(eval domain.EvaluationSettings) error {
	for _, parser := range []string{eval.Parser, eval.EndpointParser} {
		if parser == "" {
			continue
		}
		if _, err := domain.ParseParserMode(parser); err != nil {
			return err
		}
	}
	return nil
}
