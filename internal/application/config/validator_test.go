package config

import (
	"errors"
	"testing"

	"github.com/doeshing/apidocgen/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gpt", CriticModel: "gpt"},
		Models: []domain.ModelDefinition{
			{Name: "gpt", Provider: domain.ProviderKindOpenAI, Endpoint: "https://api.openai.com/v1/chat/completions", ModelID: "gpt-4o-mini"},
			{Name: "echo", Provider: domain.ProviderKindEcho},
		},
		Prompts:    domain.PromptSettings{StoreFile: "prompts.json"},
		Routes:     domain.RouteSettings{Framework: "fastapi"},
		Evaluation: domain.EvaluationSettings{Parser: "regex", EndpointParser: "delimited"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr error
		invalid bool
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "no models", mutate: func(c *domain.Config) { c.Models = nil }, invalid: true},
		{name: "duplicate model", mutate: func(c *domain.Config) { c.Models = append(c.Models, c.Models[0]) }, invalid: true},
		{name: "missing endpoint", mutate: func(c *domain.Config) { c.Models[0].Endpoint = "" }, invalid: true},
		{name: "unknown critic", mutate: func(c *domain.Config) { c.Preferences.CriticModel = "nope" }, invalid: true},
		{name: "bad mode", mutate: func(c *domain.Config) { c.Preferences.Mode = "stream" }, wantErr: domain.ErrUnsupportedMode},
		{name: "bad framework", mutate: func(c *domain.Config) { c.Routes.Framework = "django" }, wantErr: domain.ErrUnsupportedFramework},
		{name: "bad parser", mutate: func(c *domain.Config) { c.Evaluation.Parser = "json" }, wantErr: domain.ErrUnsupportedParser},
		{name: "missing prompt store", mutate: func(c *domain.Config) { c.Prompts.StoreFile = "" }, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.invalid:
				if err == nil {
					t.Fatal("expected validation error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}
