// Package markdown renders generated documentation to Markdown files.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Writer writes reports to disk, creating parent directories as needed.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteReport renders one section per endpoint under a top-level title.
func (w *Writer) WriteReport(path, title string, results []domain.GenerationResult) error {
	return w.WriteDocument(path, Render(title, results))
}

// WriteDocument writes text verbatim.
func (w *Writer) WriteDocument(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), domain.FilePermissions); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Render builds the report body.
func Render(title string, results []domain.GenerationResult) string {
	if title == "" {
		title = domain.DefaultReportTitle
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	for _, result := range results {
		ep := result.Endpoint
		sb.WriteString(fmt.Sprintf("## API Path: %s\n\n", ep.Path))
		sb.WriteString(fmt.Sprintf("**API Name:** %s\n\n", ep.Name))
		sb.WriteString(fmt.Sprintf("**Methods:** %s\n\n", ep.MethodsString()))
		sb.WriteString(fmt.Sprintf("**Parameters:** %s\n\n", ep.ParametersString()))
		if ep.HasSource() {
			sb.WriteString("**Function Content:**\n\n")
			sb.WriteString(fence(*ep.SourceCode))
		}
		if ep.HasDocstring() {
			sb.WriteString(fmt.Sprintf("**Description:** %s\n\n", strings.TrimSpace(*ep.Docstring)))
		}
		sb.WriteString("**Generated Documentation:**\n\n")
		sb.WriteString(result.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// fence wraps code in a block whose backtick run is longer than any run inside it.
func fence(code string) string {
	ticks := "```"
	for strings.Contains(code, ticks) {
		ticks += "`"
	}
	return fmt.Sprintf("%spython\n%s\n%s\n\n", ticks, strings.TrimRight(code, "\n"), ticks)
}

var _ ports.ReportWriter = (*Writer)(nil)
