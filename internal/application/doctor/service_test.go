package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubPrompts []string

func (p stubPrompts) Resolve(version string) domain.PromptTemplate {
	return domain.PromptTemplate{Version: version, Text: "x"}
}
func (p stubPrompts) Versions() []string { return p }

type stubIndex struct {
	records  []domain.EvaluationRecord
	degraded bool
}

func (s stubIndex) Record(context.Context, domain.EvaluationRecord) error { return nil }
func (s stubIndex) List(context.Context, int) ([]domain.EvaluationRecord, error) {
	return s.records, nil
}
func (s stubIndex) Summaries(context.Context, []string) ([]domain.VersionSummary, error) {
	return nil, nil
}
func (s stubIndex) Close() error   { return nil }
func (s stubIndex) Degraded() bool { return s.degraded }

func baseConfig(t *testing.T) domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{PromptVersion: "v1"},
		Models: []domain.ModelDefinition{
			{Name: "gpt", Provider: domain.ProviderKindOpenAI, AuthEnvVar: "OPENAI_API_KEY"},
			{Name: "echo", Provider: domain.ProviderKindEcho},
			{Name: "local", Provider: domain.ProviderKindOllama},
		},
		Output:     domain.OutputSettings{Dir: filepath.Join(t.TempDir(), "out")},
		Evaluation: domain.EvaluationSettings{Versions: []string{"v1", "v2"}},
	}
}

func checkByName(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not in report", name)
	return domain.HealthCheck{}
}

func TestDoctorAllGreen(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: baseConfig(t)},
		Prompts:        stubPrompts{"v1", "v2", domain.CriticReadmeKey, domain.CriticEndpointKey},
		Index:          stubIndex{records: make([]domain.EvaluationRecord, 3)},
		Getenv:         func(string) string { return "sk-test" },
	}
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	for _, check := range report.Checks {
		assert.Equal(t, domain.HealthOK, check.Status, "%s: %s", check.Name, check.Details)
	}
	assert.Contains(t, checkByName(t, report, "Evaluation index").Details, "3 records")
}

func TestDoctorWarnsOnGaps(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: baseConfig(t)},
		Prompts:        stubPrompts{"v1"},
		Index:          stubIndex{degraded: true},
		Getenv:         func(string) string { return "" },
	}
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	prompts := checkByName(t, report, "Prompt store")
	assert.Equal(t, domain.HealthWarn, prompts.Status)
	assert.Contains(t, prompts.Details, "v2")
	assert.Contains(t, prompts.Details, domain.CriticReadmeKey)

	keys := checkByName(t, report, "API keys")
	assert.Equal(t, domain.HealthWarn, keys.Status)
	assert.Contains(t, keys.Details, "gpt (OPENAI_API_KEY)")
	assert.NotContains(t, keys.Details, "local")
	assert.NotContains(t, keys.Details, "echo")

	assert.Equal(t, domain.HealthWarn, checkByName(t, report, "Evaluation index").Status)
}

func TestDoctorConfigFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("bad yaml")}}
	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}
