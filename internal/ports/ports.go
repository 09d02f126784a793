// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like model APIs, file stores, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, RouteSource)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/apidocgen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.apidocgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RouteSource yields the endpoint records of one web application.
// SourcePath names the API source file the manifest was exported from.
type RouteSource interface {
	Framework() domain.Framework
	Extract(context.Context) ([]domain.EndpointRecord, error)
	SourcePath() string
	BaseName() string
}

// RouteSourceFactory opens a route manifest with the adapter for a framework.
// An empty framework defers to the manifest's own declaration.
type RouteSourceFactory interface {
	Open(manifestPath string, framework domain.Framework) (RouteSource, error)
}

// PromptStore resolves versioned prompt templates.
// Resolve never fails: unknown versions yield the PromptNotFound sentinel.
type PromptStore interface {
	Resolve(version string) domain.PromptTemplate
	Versions() []string
}

// ProviderFactory builds AI provider instances based on model definitions.
// It abstracts the creation of different provider types (OpenAI, Anthropic, Ollama, Gemini).
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider performs one blocking chat-completion call per Generate.
// Failures are returned as *domain.ProviderError.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(ctx context.Context, prompt string) (string, error)
}

// ScoreParser extracts rubric scores from a critic reply.
type ScoreParser interface {
	Mode() domain.ParserMode
	Parse(version, text string) domain.ScoreParse
}

// EvaluationStore persists critique records so earlier evidence is never overwritten.
type EvaluationStore interface {
	Save(domain.EvaluationRecord) (domain.EvaluationRecord, error)
	Latest(version, endpoint string) (domain.EvaluationRecord, bool, error)
	Dir() string
}

// EvaluationIndex is a queryable log of every persisted critique.
type EvaluationIndex interface {
	Record(context.Context, domain.EvaluationRecord) error
	List(ctx context.Context, limit int) ([]domain.EvaluationRecord, error)
	Summaries(ctx context.Context, versions []string) ([]domain.VersionSummary, error)
	Close() error
}

// ReportWriter renders generation output to disk.
type ReportWriter interface {
	WriteReport(path, title string, results []domain.GenerationResult) error
	WriteDocument(path, text string) error
}

// Confirmer asks a yes/no question on an interactive terminal.
type Confirmer interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// ModeChooser asks which generation mode to run.
type ModeChooser interface {
	ChooseMode() (domain.RunMode, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
