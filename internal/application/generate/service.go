// Package generate turns a route manifest into a Markdown documentation report.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Service runs documentation generation for one API file.
type Service struct {
	Routes    ports.RouteSourceFactory
	Prompts   ports.PromptStore
	Writer    ports.ReportWriter
	Confirmer ports.Confirmer
	Logger    ports.Logger
	Clock     func() time.Time
}

// Request describes one generation run.
type Request struct {
	APIFile   string
	Framework domain.Framework
	Mode      domain.RunMode
	Version   string
	OutputDir string
	Title     string
	Provider  ports.Provider
	Timeout   time.Duration
	// InteractiveSelection asks the Confirmer before documenting each endpoint.
	InteractiveSelection bool
}

// Result reports what a run produced.
type Result struct {
	Mode     domain.RunMode
	Path     string
	Results  []domain.GenerationResult
	Skipped  int
	Fallback bool
}

// Run extracts routes, generates documentation, and writes the report.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if s.Routes == nil || s.Prompts == nil || s.Writer == nil || s.Logger == nil {
		return Result{}, errors.New("generate.Service dependencies not satisfied")
	}
	if req.Provider == nil {
		return Result{}, errors.New("generate: no provider")
	}

	source, err := s.Routes.Open(req.APIFile, req.Framework)
	if err != nil {
		return Result{}, err
	}

	template := s.Prompts.Resolve(req.Version)
	if template.IsFallback() {
		s.Logger.Warn("prompt version not in store, sending fallback text", map[string]interface{}{"version": req.Version})
	}

	result := Result{Mode: req.Mode, Fallback: template.IsFallback()}
	result.Path = domain.ReportPath(req.OutputDir, req.Provider.Model().Name, req.Mode, req.Version,
		source.BaseName(), s.now().Format(domain.TimestampLayout))

	switch req.Mode {
	case domain.RunModeBulk:
		text, err := s.runBulk(ctx, req, source, template)
		if err != nil {
			return Result{}, err
		}
		if err := s.Writer.WriteDocument(result.Path, text); err != nil {
			return Result{}, err
		}
	case domain.RunModeAPIByAPI:
		results, skipped, err := s.runPerEndpoint(ctx, req, source, template)
		if err != nil {
			return Result{}, err
		}
		result.Results = results
		result.Skipped = skipped
		if err := s.Writer.WriteReport(result.Path, req.Title, results); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, &domain.ConfigError{Field: "mode", Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, req.Mode)}
	}

	s.Logger.Info("documentation written", map[string]interface{}{
		"path":    result.Path,
		"mode":    string(req.Mode),
		"version": req.Version,
	})
	return result, nil
}

// runBulk sends the whole API source file through the template in one call.
func (s *Service) runBulk(ctx context.Context, req Request, source ports.RouteSource, template domain.PromptTemplate) (string, error) {
	content, err := os.ReadFile(source.SourcePath())
	if err != nil {
		return "", fmt.Errorf("read API source: %w", err)
	}
	prompt, err := template.Fill(map[string]string{"api_file_content": string(content)})
	if err != nil {
		return "", fmt.Errorf("fill prompt %s: %w", req.Version, err)
	}
	return Call(ctx, req.Provider, prompt, req.Timeout, s.Logger)
}

func (s *Service) runPerEndpoint(ctx context.Context, req Request, source ports.RouteSource, template domain.PromptTemplate) ([]domain.GenerationResult, int, error) {
	endpoints, err := source.Extract(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(endpoints) == 0 {
		s.Logger.Warn("no endpoints found", map[string]interface{}{"api_file": req.APIFile})
	}

	results := make([]domain.GenerationResult, 0, len(endpoints))
	skipped := 0
	for _, endpoint := range endpoints {
		if req.InteractiveSelection && s.Confirmer != nil && s.Confirmer.Enabled() {
			include, err := s.Confirmer.Confirm(fmt.Sprintf("Document %s %s (%s)?", endpoint.MethodsString(), endpoint.Path, endpoint.Name))
			if err != nil {
				return nil, 0, err
			}
			if !include {
				skipped++
				continue
			}
		}

		prompt, err := template.Fill(endpoint.PromptValues())
		if err != nil {
			return nil, 0, fmt.Errorf("fill prompt %s for %s: %w", req.Version, endpoint.Path, err)
		}
		text, err := Call(ctx, req.Provider, prompt, req.Timeout, s.Logger)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, domain.GenerationResult{Endpoint: endpoint, Version: req.Version, Text: text})
	}
	return results, skipped, nil
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Call performs one provider call bounded by timeout.
// Failures that escaped the provider untyped are wrapped as ProviderError.
func Call(ctx context.Context, provider ports.Provider, prompt string, timeout time.Duration, logger ports.Logger) (string, error) {
	if timeout <= 0 {
		timeout = domain.DefaultProviderTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    provider.Model().ModelID,
	})
	text, err := provider.Generate(callCtx, prompt)
	if err != nil {
		var providerErr *domain.ProviderError
		if !errors.As(err, &providerErr) {
			err = &domain.ProviderError{Provider: provider.Name(), Model: provider.Model().ModelID, Err: err}
		}
		return "", err
	}
	return text, nil
}
