package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestWriteReport(t *testing.T) {
	hello := domain.NewEndpointRecord("say_hello", "/hello", []string{"GET"}, []string{"name"})
	hello.SourceCode = domain.StringPtr("def say_hello(name):\n    return name\n")
	hello.Docstring = domain.StringPtr("Say hello.")
	items := domain.NewEndpointRecord("items", "/items", []string{"POST"}, nil)

	path := filepath.Join(t.TempDir(), "nested", "dir", "report.md")
	err := NewWriter().WriteReport(path, "Sample Docs", []domain.GenerationResult{
		{Endpoint: hello, Version: "v1", Text: "GENERATED HELLO"},
		{Endpoint: items, Version: "v1", Text: "GENERATED ITEMS"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(data)

	assert.True(t, strings.HasPrefix(report, "# Sample Docs\n"))
	assert.Contains(t, report, "## API Path: /hello")
	assert.Contains(t, report, "**Methods:** GET")
	assert.Contains(t, report, "**Parameters:** name")
	assert.Contains(t, report, "```python\ndef say_hello(name):\n    return name\n```")
	assert.Contains(t, report, "**Description:** Say hello.")
	assert.Contains(t, report, "GENERATED HELLO")
	assert.Contains(t, report, "**Parameters:** None")
	assert.Less(t, strings.Index(report, "/hello"), strings.Index(report, "/items"))

	itemsSection := report[strings.Index(report, "## API Path: /items"):]
	assert.NotContains(t, itemsSection, "**Function Content:**")
	assert.NotContains(t, itemsSection, "**Description:**")
}

func TestWriteDocumentExistingDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bulk.md")
	w := NewWriter()
	require.NoError(t, w.WriteDocument(path, "first"))
	require.NoError(t, w.WriteDocument(path, "verbatim text"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "verbatim text", string(data))
}

func TestReportPath(t *testing.T) {
	got := domain.ReportPath("out", "gpt-4o-mini", domain.RunModeAPIByAPI, "v2", "sample_apis", "2024-11-02_10-00-00")
	assert.Equal(t, filepath.Join("out", "gpt-4o-mini", "API-by-API", "v2", "sample_apis2024-11-02_10-00-00.md"), got)
}

func TestFenceEscapesBackticks(t *testing.T) {
	out := fence("x = '```'")
	assert.True(t, strings.HasPrefix(out, "````python\n"))
}
