// Package evaluate scores generated documentation with a critic model.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/apidocgen/internal/application/generate"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Service orchestrates critique calls, reuse of stored results and persistence.
type Service struct {
	Prompts   ports.PromptStore
	Store     ports.EvaluationStore
	Index     ports.EvaluationIndex
	Confirmer ports.Confirmer
	Logger    ports.Logger
}

// Options are shared by both evaluation flows.
type Options struct {
	Critic         ports.Provider
	Parser         ports.ScoreParser
	ReuseIfPresent bool
	// Interactive defers the reuse decision to the Confirmer when one is available.
	Interactive bool
	Timeout     time.Duration
}

// DocumentsRequest critiques one generated README per version.
type DocumentsRequest struct {
	Options
	Versions       []string
	Documents      map[string]string
	APIFileContent string
}

// EndpointsRequest generates and critiques documentation per endpoint and version.
type EndpointsRequest struct {
	Options
	Versions  []string
	Endpoints []domain.EndpointRecord
	Generator ports.Provider
	// Limit caps the number of endpoints evaluated; zero means all.
	Limit int
}

// Report aggregates evaluation output per prompt version.
type Report struct {
	Versions []string
	Scores   map[string][]domain.EvaluationRecord
	Totals   map[string]int
	Reused   map[string]bool
}

func newReport(versions []string) Report {
	report := Report{
		Versions: append([]string(nil), versions...),
		Scores:   make(map[string][]domain.EvaluationRecord, len(versions)),
		Totals:   make(map[string]int, len(versions)),
		Reused:   make(map[string]bool, len(versions)),
	}
	for _, v := range versions {
		report.Reused[v] = true
	}
	return report
}

func (r *Report) add(record domain.EvaluationRecord, reused bool) {
	r.Scores[record.Version] = append(r.Scores[record.Version], record)
	r.Totals[record.Version] += record.Scores.OverallOrZero()
	if !reused {
		r.Reused[record.Version] = false
	}
}

// EvaluateDocuments critiques each version's README, reusing stored results when allowed.
func (s *Service) EvaluateDocuments(ctx context.Context, req DocumentsRequest) (Report, error) {
	if err := s.check(req.Options); err != nil {
		return Report{}, err
	}
	report := newReport(req.Versions)

	for _, version := range req.Versions {
		if record, ok, err := s.reusable(version, "", req.Options); err != nil {
			return report, err
		} else if ok {
			report.add(record, true)
			continue
		}

		document, ok := req.Documents[version]
		if !ok {
			return report, fmt.Errorf("no generated document for version %s", version)
		}
		prompt, err := s.Prompts.Resolve(domain.CriticReadmeKey).Fill(map[string]string{
			"api_file_content": req.APIFileContent,
			"generated_readme": document,
		})
		if err != nil {
			return report, fmt.Errorf("fill critic prompt: %w", err)
		}

		record, err := s.critique(ctx, version, "", prompt, req.Options)
		if err != nil {
			return report, err
		}
		report.add(record, false)
	}
	return report, nil
}

// EvaluateEndpoints generates documentation for each endpoint under every version and critiques it.
func (s *Service) EvaluateEndpoints(ctx context.Context, req EndpointsRequest) (Report, error) {
	if err := s.check(req.Options); err != nil {
		return Report{}, err
	}
	if req.Generator == nil {
		return Report{}, errors.New("evaluate: no generator provider")
	}
	endpoints := req.Endpoints
	if req.Limit > 0 && len(endpoints) > req.Limit {
		endpoints = endpoints[:req.Limit]
	}
	report := newReport(req.Versions)

	for _, endpoint := range endpoints {
		for _, version := range req.Versions {
			if record, ok, err := s.reusable(version, endpoint.Key(), req.Options); err != nil {
				return report, err
			} else if ok {
				report.add(record, true)
				continue
			}

			generationPrompt, err := s.Prompts.Resolve(version).Fill(endpoint.PromptValues())
			if err != nil {
				return report, fmt.Errorf("fill prompt %s for %s: %w", version, endpoint.Path, err)
			}
			generated, err := generate.Call(ctx, req.Generator, generationPrompt, req.Timeout, s.Logger)
			if err != nil {
				return report, err
			}

			criticPrompt, err := s.Prompts.Resolve(domain.CriticEndpointKey).Fill(map[string]string{"response": generated})
			if err != nil {
				return report, fmt.Errorf("fill critic prompt: %w", err)
			}
			record, err := s.critique(ctx, version, endpoint.Key(), criticPrompt, req.Options)
			if err != nil {
				return report, err
			}
			report.add(record, false)
		}
	}
	for _, version := range req.Versions {
		if len(report.Scores[version]) == 0 {
			report.Reused[version] = false
		}
	}
	return report, nil
}

func (s *Service) check(opts Options) error {
	if s.Prompts == nil || s.Store == nil || s.Logger == nil {
		return errors.New("evaluate.Service dependencies not satisfied")
	}
	if opts.Critic == nil || opts.Parser == nil {
		return errors.New("evaluate: critic provider and parser are required")
	}
	return nil
}

// reusable returns the stored record for (version, endpoint) when policy allows reusing it.
func (s *Service) reusable(version, endpoint string, opts Options) (domain.EvaluationRecord, bool, error) {
	record, found, err := s.Store.Latest(version, endpoint)
	if err != nil {
		return domain.EvaluationRecord{}, false, fmt.Errorf("look up stored evaluation: %w", err)
	}
	if !found {
		return domain.EvaluationRecord{}, false, nil
	}

	reuse := opts.ReuseIfPresent
	if opts.Interactive && s.Confirmer != nil && s.Confirmer.Enabled() {
		subject := "version " + version
		if endpoint != "" {
			subject += ", endpoint " + endpoint
		}
		reuse, err = s.Confirmer.Confirm(fmt.Sprintf("An evaluation for %s already exists (%s). Use it?", subject, record.File))
		if err != nil {
			return domain.EvaluationRecord{}, false, err
		}
	}
	if reuse {
		s.Logger.Info("reusing stored evaluation", map[string]interface{}{
			"version":  version,
			"endpoint": endpoint,
			"file":     record.File,
		})
	}
	return record, reuse, nil
}

func (s *Service) critique(ctx context.Context, version, endpoint, prompt string, opts Options) (domain.EvaluationRecord, error) {
	raw, err := generate.Call(ctx, opts.Critic, prompt, opts.Timeout, s.Logger)
	if err != nil {
		return domain.EvaluationRecord{}, err
	}

	parse := opts.Parser.Parse(version, raw)
	for _, issue := range parse.Issues {
		s.Logger.Warn("score parse issue", map[string]interface{}{
			"version":  version,
			"endpoint": endpoint,
			"issue":    issue,
		})
	}

	record, err := s.Store.Save(domain.EvaluationRecord{
		Version:     version,
		Endpoint:    endpoint,
		Scores:      parse.Scores,
		RawResponse: raw,
	})
	if err != nil {
		return domain.EvaluationRecord{}, err
	}
	if s.Index != nil {
		if err := s.Index.Record(ctx, record); err != nil {
			s.Logger.Warn("evaluation index update failed", map[string]interface{}{"file": record.File, "error": err.Error()})
		}
	}
	return record, nil
}
