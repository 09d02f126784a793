// Package config loads ~/.apidocgen/config.yaml and seeds the default files on first run.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/apidocgen/assets"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/pkg/filesystem"
	"github.com/doeshing/apidocgen/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "APIDOCGEN_CONFIG"

// FileLoader loads YAML configuration from ~/.apidocgen/config.yaml (overridable via APIDOCGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, &domain.ConfigError{Field: path, Err: err}
	}

	cfg = hydrateDefaults(cfg, filepath.Dir(path))
	if err := ensurePromptStore(cfg.Prompts.StoreFile); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Path resolves the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".apidocgen", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

// ensurePromptStore writes the embedded prompt store when none exists yet.
func ensurePromptStore(path string) error {
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create prompt store dir: %w", err)
	}
	if err := os.WriteFile(path, assets.DefaultPromptsJSON, domain.FilePermissions); err != nil {
		return fmt.Errorf("write default prompt store: %w", err)
	}
	return nil
}

// DefaultConfig parses the embedded configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Defaults returns the embedded configuration hydrated as Load would hydrate it.
func (l *FileLoader) Defaults() (domain.Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg, filepath.Dir(l.Path())), nil
}

func hydrateDefaults(cfg domain.Config, configDir string) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.PromptVersion == "" {
		cfg.Preferences.PromptVersion = "v1"
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultProviderTimeout.Seconds())
	}
	if cfg.Prompts.StoreFile == "" {
		cfg.Prompts.StoreFile = filepath.Join(configDir, "prompts.json")
	}
	cfg.Prompts.StoreFile = expandPath(cfg.Prompts.StoreFile)
	if cfg.Prompts.CacheSize == 0 {
		cfg.Prompts.CacheSize = domain.DefaultPromptCacheSize
	}
	if cfg.Routes.Framework == "" {
		cfg.Routes.Framework = string(domain.FrameworkFastAPI)
	}
	if cfg.Routes.AppAttr == "" {
		cfg.Routes.AppAttr = domain.DefaultAppAttr
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	cfg.Output.Dir = expandPath(cfg.Output.Dir)
	if cfg.Output.EvaluationsDir == "" {
		cfg.Output.EvaluationsDir = filepath.Join(cfg.Output.Dir, domain.EvaluationsDirName)
	}
	cfg.Output.EvaluationsDir = expandPath(cfg.Output.EvaluationsDir)
	if cfg.Output.Title == "" {
		cfg.Output.Title = domain.DefaultReportTitle
	}
	if cfg.Evaluation.Parser == "" {
		cfg.Evaluation.Parser = string(domain.ParserRegex)
	}
	if cfg.Evaluation.EndpointParser == "" {
		cfg.Evaluation.EndpointParser = string(domain.ParserDelimited)
	}
	if cfg.Evaluation.IndexFile == "" {
		cfg.Evaluation.IndexFile = filepath.Join(configDir, "evaluations.db")
	}
	cfg.Evaluation.IndexFile = expandPath(cfg.Evaluation.IndexFile)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.File != "" {
		cfg.Logging.File = expandPath(cfg.Logging.File)
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
