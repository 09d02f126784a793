package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/infrastructure/markdown"
	"github.com/doeshing/apidocgen/internal/infrastructure/prompts"
	"github.com/doeshing/apidocgen/internal/infrastructure/routes"
	"github.com/doeshing/apidocgen/internal/pkg/logger"
)

type stubProvider struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Model() domain.ModelDefinition {
	return domain.ModelDefinition{Name: "stub-model", ModelID: "stub-1"}
}
func (s *stubProvider) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

type stubConfirmer struct {
	answers []bool
	asked   []string
}

func (s *stubConfirmer) Enabled() bool { return true }
func (s *stubConfirmer) Confirm(question string) (bool, error) {
	s.asked = append(s.asked, question)
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func newService(t *testing.T, store string) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(store), 0o644))
	promptStore, err := prompts.NewJSONStore(path, 0, nil, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, promptStore.Load())

	return &Service{
		Routes:  routes.NewFactory("app"),
		Prompts: promptStore,
		Writer:  markdown.NewWriter(),
		Logger:  logger.NewNop(),
		Clock: func() time.Time {
			return time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)
		},
	}
}

func TestRunPerEndpointWritesHelloReport(t *testing.T) {
	svc := newService(t, `{"v1": "Document {path} {methods} {parameters}"}`)
	provider := &stubProvider{reply: "STUBBED DOCUMENTATION FOR HELLO"}
	out := t.TempDir()

	result, err := svc.Run(context.Background(), Request{
		APIFile:   filepath.Join("testdata", "sample_apis.yaml"),
		Mode:      domain.RunModeAPIByAPI,
		Version:   "v1",
		OutputDir: out,
		Provider:  provider,
		Timeout:   time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "stub-model", "API-by-API", "v1", "sample_apis2024-11-02_10-00-00.md"), result.Path)
	require.Len(t, provider.prompts, 1)
	assert.Equal(t, "Document /hello GET name", provider.prompts[0])

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "## API Path: /hello")
	assert.Contains(t, report, "**Methods:** GET")
	assert.Contains(t, report, "**Parameters:** name")
	assert.Contains(t, report, "STUBBED DOCUMENTATION FOR HELLO")
}

func TestRunBulkSendsWholeSourceFile(t *testing.T) {
	svc := newService(t, `{"bulk": "README for:\n{api_file_content}"}`)
	provider := &stubProvider{reply: "# Sample README"}

	result, err := svc.Run(context.Background(), Request{
		APIFile:   filepath.Join("testdata", "sample_apis.yaml"),
		Mode:      domain.RunModeBulk,
		Version:   "bulk",
		OutputDir: t.TempDir(),
		Provider:  provider,
	})
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.True(t, strings.HasPrefix(provider.prompts[0], "README for:\nfrom fastapi import FastAPI"))
	assert.Contains(t, result.Path, filepath.Join("BatchAPI", "bulk"))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "# Sample README", string(data))
}

func TestRunInteractiveSelectionSkipsDeclined(t *testing.T) {
	svc := newService(t, `{"v1": "Document {path}"}`)
	confirmer := &stubConfirmer{answers: []bool{false}}
	svc.Confirmer = confirmer
	provider := &stubProvider{reply: "unused"}

	result, err := svc.Run(context.Background(), Request{
		APIFile:              filepath.Join("testdata", "sample_apis.yaml"),
		Mode:                 domain.RunModeAPIByAPI,
		Version:              "v1",
		OutputDir:            t.TempDir(),
		Provider:             provider,
		InteractiveSelection: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Results)
	assert.Empty(t, provider.prompts)
	assert.Len(t, confirmer.asked, 1)
}

func TestRunUnknownVersionUsesSentinel(t *testing.T) {
	svc := newService(t, `{"v1": "Document {path}"}`)
	provider := &stubProvider{reply: "doc"}

	result, err := svc.Run(context.Background(), Request{
		APIFile:   filepath.Join("testdata", "sample_apis.yaml"),
		Mode:      domain.RunModeAPIByAPI,
		Version:   "v7",
		OutputDir: t.TempDir(),
		Provider:  provider,
	})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, []string{domain.PromptNotFound}, provider.prompts)
}

func TestRunProviderFailureIsFatal(t *testing.T) {
	svc := newService(t, `{"v1": "Document {path}"}`)
	provider := &stubProvider{err: errors.New("connection refused")}
	out := t.TempDir()

	_, err := svc.Run(context.Background(), Request{
		APIFile:   filepath.Join("testdata", "sample_apis.yaml"),
		Mode:      domain.RunModeAPIByAPI,
		Version:   "v1",
		OutputDir: out,
		Provider:  provider,
	})
	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	entries, _ := os.ReadDir(out)
	assert.Empty(t, entries)
}

func TestRunMissingPlaceholderIsReported(t *testing.T) {
	svc := newService(t, `{"v1": "Document {path} with {examples}"}`)
	_, err := svc.Run(context.Background(), Request{
		APIFile:   filepath.Join("testdata", "sample_apis.yaml"),
		Mode:      domain.RunModeAPIByAPI,
		Version:   "v1",
		OutputDir: t.TempDir(),
		Provider:  &stubProvider{},
	})
	var missing *domain.MissingValuesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"examples"}, missing.Names)
}
