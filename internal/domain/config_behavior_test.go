package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/apidocgen/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gpt4o-mini"},
				Models: []domain.ModelDefinition{
					{Name: "gpt4o-mini", ModelID: "gpt-4o-mini"},
					{Name: "claude", ModelID: "claude-3-5-sonnet"},
				},
			},
			wantModelID: "gpt-4o-mini",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "claude"}},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{{Name: "claude"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

func TestConfig_GetCriticModel(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gen"},
		Models: []domain.ModelDefinition{
			{Name: "gen", ModelID: "gpt-4o-mini"},
			{Name: "critic", ModelID: "gpt-4o"},
		},
	}

	model, err := cfg.GetCriticModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Name != "gen" {
		t.Errorf("expected fallback to default model, got %s", model.Name)
	}

	cfg.Preferences.CriticModel = "critic"
	model, err = cfg.GetCriticModel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.ModelID != "gpt-4o" {
		t.Errorf("got model ID %s, want gpt-4o", model.ModelID)
	}

	cfg.Preferences.CriticModel = "missing"
	if _, err := cfg.GetCriticModel(); err == nil {
		t.Error("expected error for unknown critic model")
	}
}

func TestConfig_ResolveModel(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gen"},
		Models: []domain.ModelDefinition{
			{Name: "gen", ModelID: "gpt-4o-mini", Endpoint: "https://api.openai.com/v1/chat/completions"},
		},
	}

	tests := []struct {
		name        string
		input       string
		wantName    string
		wantModelID string
	}{
		{name: "empty uses default", input: "", wantName: "gen", wantModelID: "gpt-4o-mini"},
		{name: "configured name", input: "gen", wantName: "gen", wantModelID: "gpt-4o-mini"},
		{name: "raw model id reuses default endpoint", input: "gpt-4o", wantName: "gpt-4o", wantModelID: "gpt-4o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := cfg.ResolveModel(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.Name != tt.wantName || model.ModelID != tt.wantModelID {
				t.Errorf("got %s/%s, want %s/%s", model.Name, model.ModelID, tt.wantName, tt.wantModelID)
			}
			if model.Endpoint != cfg.Models[0].Endpoint {
				t.Errorf("endpoint not inherited: %s", model.Endpoint)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg domain.Config
	if cfg.GetTimeout() != domain.DefaultProviderTimeout {
		t.Errorf("unexpected default timeout %v", cfg.GetTimeout())
	}
	if cfg.GetAppAttr() != "app" {
		t.Errorf("unexpected default app attr %q", cfg.GetAppAttr())
	}
	if cfg.GetPromptCacheSize() != domain.DefaultPromptCacheSize {
		t.Errorf("unexpected default cache size %d", cfg.GetPromptCacheSize())
	}

	cfg.Preferences.TimeoutSeconds = 5
	cfg.Routes.AppAttr = "application"
	if cfg.GetTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.GetTimeout())
	}
	if cfg.GetAppAttr() != "application" {
		t.Errorf("unexpected app attr %q", cfg.GetAppAttr())
	}
}

// TestConfig_ValidateConsistency tests configuration consistency validation
func TestConfig_ValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{
			name: "valid configuration",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gen", CriticModel: "critic"},
				Models:      []domain.ModelDefinition{{Name: "gen"}, {Name: "critic"}},
			},
		},
		{
			name: "invalid: default model doesn't exist",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "gen"}},
			},
			wantError: true,
		},
		{
			name: "invalid: critic model doesn't exist",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gen", CriticModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "gen"}},
			},
			wantError: true,
		},
		{
			name: "invalid: default model set but no models configured",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "gen"},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestModelDefinition_Kind(t *testing.T) {
	tests := []struct {
		model domain.ModelDefinition
		want  domain.ProviderKind
	}{
		{domain.ModelDefinition{Provider: domain.ProviderKindEcho}, domain.ProviderKindEcho},
		{domain.ModelDefinition{Endpoint: "https://api.anthropic.com/v1/messages"}, domain.ProviderKindAnthropic},
		{domain.ModelDefinition{Endpoint: "https://api.openai.com/v1/chat/completions"}, domain.ProviderKindOpenAI},
		{domain.ModelDefinition{Endpoint: "http://localhost:11434/api/chat"}, domain.ProviderKindOllama},
		{domain.ModelDefinition{Endpoint: "https://example.test/chat"}, domain.ProviderKindHTTP},
	}
	for _, tt := range tests {
		if got := tt.model.Kind(); got != tt.want {
			t.Errorf("Kind(%q) = %s, want %s", tt.model.Endpoint, got, tt.want)
		}
	}
}
