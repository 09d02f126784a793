// Package ai provides the AI provider factory and its provider implementations.
//
// This package implements a configuration-driven approach to AI providers:
//   - Factory: Creates provider instances based on model definitions
//   - HTTP Provider: Generic HTTP client supporting any chat API via YAML config
//   - Gemini Provider: Google Gemini through the official genai SDK
//   - Echo Provider: Offline provider that returns its prompt, for dry runs and tests
//
// HTTP provider behavior is controlled through the model's APIFormat configuration.
// The provider kind only seeds sensible APIFormat defaults for well-known services.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

const httpClientTimeout = 5 * time.Minute

// Factory creates AI provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
	logger     ports.Logger
}

// NewFactory creates a new provider factory with a configured HTTP client.
// The per-call deadline comes from the caller's context; the client timeout is only a backstop.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: httpClientTimeout},
		logger:     logger,
	}
}

// ForModel creates the provider for a model definition.
// Missing credentials are reported here, before any call is attempted.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	kind := model.Kind()
	if err := checkCredentials(model, kind); err != nil {
		return nil, err
	}

	switch kind {
	case domain.ProviderKindEcho:
		return newEchoProvider(model), nil
	case domain.ProviderKindGemini:
		return newGeminiProvider(context.Background(), model, f.logger)
	default:
		return newHTTPProvider(withPreset(model, kind), f.httpClient, f.logger), nil
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)

// checkCredentials requires an API key for hosted services and for any model naming an auth env var.
func checkCredentials(model domain.ModelDefinition, kind domain.ProviderKind) error {
	field := fmt.Sprintf("models[%s].auth_env_var", model.Name)
	switch kind {
	case domain.ProviderKindEcho:
		return nil
	case domain.ProviderKindOpenAI, domain.ProviderKindAnthropic, domain.ProviderKindGemini:
		if model.AuthEnvVar == "" {
			return &domain.ConfigError{Field: field, Err: fmt.Errorf("%w: no auth_env_var configured", domain.ErrMissingCredential)}
		}
	default:
		if model.AuthEnvVar == "" {
			return nil
		}
	}
	if getAPIKey(model) == "" {
		return &domain.ConfigError{Field: field, Err: fmt.Errorf("%w: set %s environment variable", domain.ErrMissingCredential, model.AuthEnvVar)}
	}
	return nil
}

// withPreset fills unset APIFormat fields for well-known services.
func withPreset(model domain.ModelDefinition, kind domain.ProviderKind) domain.ModelDefinition {
	format := model.APIFormat
	switch kind {
	case domain.ProviderKindAnthropic:
		if format.AuthHeaderName == "" {
			format.AuthHeaderName = "x-api-key"
		}
		if format.SystemMessageMode == "" {
			format.SystemMessageMode = domain.SystemMessageModeSeparate
		}
		if format.ContentWrapper == "" {
			format.ContentWrapper = domain.ContentWrapperAnthropic
		}
		if format.ResponseJSONPath == "" {
			format.ResponseJSONPath = domain.AnthropicResponsePath
		}
		if _, ok := format.ExtraHeaders["anthropic-version"]; !ok {
			headers := make(map[string]string, len(format.ExtraHeaders)+1)
			for k, v := range format.ExtraHeaders {
				headers[k] = v
			}
			headers["anthropic-version"] = "2023-06-01"
			format.ExtraHeaders = headers
		}
		if model.MaxTokens <= 0 {
			model.MaxTokens = domain.DefaultMaxTokens
		}
	case domain.ProviderKindOllama:
		if format.ResponseJSONPath == "" {
			format.ResponseJSONPath = domain.OllamaResponsePath
		}
	}
	model.APIFormat = format
	model.Provider = kind
	return model
}

// getAPIKey retrieves the API key from environment variables.
func getAPIKey(model domain.ModelDefinition) string {
	if model.AuthEnvVar != "" {
		if key := os.Getenv(model.AuthEnvVar); key != "" {
			return key
		}
	}
	return ""
}

func providerError(model domain.ModelDefinition, name string, status int, err error) error {
	return &domain.ProviderError{Provider: name, Model: model.ModelID, Status: status, Err: err}
}
