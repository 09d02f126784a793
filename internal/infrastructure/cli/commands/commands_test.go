package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestLookupConfigValue(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "gpt-4o-mini"},
		Models:      []domain.ModelDefinition{{Name: "gpt-4o-mini", ModelID: "gpt-4o-mini"}},
	}

	tests := []struct {
		key  string
		want interface{}
	}{
		{"preferences.default_model", "gpt-4o-mini"},
		{"models.0.model_id", "gpt-4o-mini"},
	}
	for _, tt := range tests {
		got, err := lookupConfigValue(cfg, tt.key)
		if err != nil {
			t.Fatalf("lookupConfigValue(%q) error: %v", tt.key, err)
		}
		if got != tt.want {
			t.Fatalf("lookupConfigValue(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}

	for _, key := range []string{"preferences.missing", "models.5.name", "models.x"} {
		if _, err := lookupConfigValue(cfg, key); err == nil {
			t.Fatalf("expected error for %q", key)
		}
	}
}

func TestListRoutes(t *testing.T) {
	var out bytes.Buffer
	listRoutes(&out, domain.FrameworkFlask, []domain.EndpointRecord{
		domain.NewEndpointRecord("say_hello", "/hello", []string{"GET"}, []string{"name"}),
	})
	text := out.String()
	for _, want := range []string{"Framework: flask", "/hello", "say_hello", "name"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	out.Reset()
	listRoutes(&out, domain.FrameworkFastAPI, nil)
	if strings.TrimSpace(out.String()) != MsgNoRoutes {
		t.Fatalf("unexpected empty output %q", out.String())
	}
}

type mapPrompts map[string]string

func (m mapPrompts) Resolve(version string) domain.PromptTemplate {
	text, ok := m[version]
	if !ok {
		text = domain.PromptNotFound
	}
	return domain.PromptTemplate{Version: version, Text: text}
}

func (m mapPrompts) Versions() []string {
	return []string{domain.CriticEndpointKey, domain.CriticReadmeKey, "bulk", "v1"}
}

func TestListPromptsHidesRubrics(t *testing.T) {
	var out bytes.Buffer
	listPrompts(&out, "prompts.json", mapPrompts{
		domain.CriticEndpointKey: "Rate:\n{response}",
		domain.CriticReadmeKey:   "Rate:\n{generated_readme}",
		"bulk":                   "README for {api_file_content}",
		"v1":                     "Document {path}",
	})
	text := out.String()
	for _, want := range []string{"bulk", "v1", "[path]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "critic:") {
		t.Fatalf("rubric keys listed:\n%s", text)
	}

	out.Reset()
	listPrompts(&out, "prompts.json", rubricsOnly{})
	if strings.TrimSpace(out.String()) != MsgNoPrompts {
		t.Fatalf("unexpected output %q", out.String())
	}
}

type rubricsOnly struct{ mapPrompts }

func (rubricsOnly) Versions() []string { return []string{domain.CriticReadmeKey} }

func TestDisplayDoctorReport(t *testing.T) {
	var out bytes.Buffer
	displayDoctorReport(&out, domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "API keys", Status: domain.HealthWarn, Details: "missing for gpt"},
	}})
	if out.String() != "[WARN] API keys - missing for gpt\n" {
		t.Fatalf("unexpected report %q", out.String())
	}
}
