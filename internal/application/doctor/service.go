package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Prompts        ports.PromptStore
	Index          ports.EvaluationIndex
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))

	checks = append(checks, s.promptCheck(cfg))
	checks = append(checks, s.apiCheck(cfg.Models))
	checks = append(checks, s.indexCheck(ctx, cfg))
	checks = append(checks, outputCheck(cfg.Output.Dir))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) promptCheck(cfg domain.Config) domain.HealthCheck {
	if s.Prompts == nil {
		return warn("Prompt store", "prompt store not initialized")
	}
	versions := s.Prompts.Versions()
	if len(versions) == 0 {
		return fail("Prompt store", fmt.Sprintf("no prompts in %s", cfg.Prompts.StoreFile))
	}

	known := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		known[v] = struct{}{}
	}
	var missing []string
	wanted := append([]string{cfg.Preferences.PromptVersion, domain.CriticReadmeKey, domain.CriticEndpointKey}, cfg.Evaluation.Versions...)
	for _, v := range wanted {
		if v == "" {
			continue
		}
		if _, exists := known[v]; !exists && !contains(missing, v) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return warn("Prompt store", "missing versions: "+strings.Join(missing, ", "))
	}
	return ok("Prompt store", fmt.Sprintf("%d versions in %s", len(versions), cfg.Prompts.StoreFile))
}

func (s *Service) apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	var missing []string
	for _, model := range models {
		switch model.Kind() {
		case domain.ProviderKindEcho:
			continue
		case domain.ProviderKindOpenAI, domain.ProviderKindAnthropic, domain.ProviderKindGemini:
			if model.AuthEnvVar == "" {
				missing = append(missing, fmt.Sprintf("%s (no auth_env_var)", model.Name))
				continue
			}
		}
		if model.AuthEnvVar != "" && getenv(model.AuthEnvVar) == "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", model.Name, model.AuthEnvVar))
		}
	}
	if len(missing) > 0 {
		return warn("API keys", "missing for "+strings.Join(missing, ", "))
	}
	return ok("API keys", "detected for configured providers")
}

func (s *Service) indexCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if s.Index == nil {
		return warn("Evaluation index", "index not initialized")
	}
	if degraded, isDegraded := s.Index.(interface{ Degraded() bool }); isDegraded && degraded.Degraded() {
		return warn("Evaluation index", fmt.Sprintf("%s unavailable, scanning %s instead", cfg.Evaluation.IndexFile, cfg.Output.EvaluationsDir))
	}
	records, err := s.Index.List(ctx, 0)
	if err != nil {
		return fail("Evaluation index", err.Error())
	}
	return ok("Evaluation index", fmt.Sprintf("%d records in %s", len(records), cfg.Evaluation.IndexFile))
}

func outputCheck(dir string) domain.HealthCheck {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Output directory", err.Error())
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fail("Output directory", fmt.Sprintf("%s not writable: %v", dir, err))
	}
	name := probe.Name()
	probe.Close()
	_ = os.Remove(name)
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return ok("Output directory", abs+" writable")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
