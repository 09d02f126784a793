// Package app builds the dependency graph shared by every CLI command.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/doeshing/apidocgen/assets"
	appconfig "github.com/doeshing/apidocgen/internal/application/config"
	"github.com/doeshing/apidocgen/internal/application/doctor"
	"github.com/doeshing/apidocgen/internal/application/evaluate"
	"github.com/doeshing/apidocgen/internal/application/generate"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/infrastructure/ai"
	"github.com/doeshing/apidocgen/internal/infrastructure/config"
	"github.com/doeshing/apidocgen/internal/infrastructure/evaluations"
	"github.com/doeshing/apidocgen/internal/infrastructure/markdown"
	"github.com/doeshing/apidocgen/internal/infrastructure/prompts"
	"github.com/doeshing/apidocgen/internal/infrastructure/routes"
	"github.com/doeshing/apidocgen/internal/infrastructure/scoring"
	"github.com/doeshing/apidocgen/internal/pkg/logger"
	"github.com/doeshing/apidocgen/internal/ports"
)

// EnvDebug enables verbose logging when set to 1 or true.
const EnvDebug = "APIDOCGEN_DEBUG"

// Options tunes container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	Logger          *logger.ZapLogger
	Prompts         *prompts.JSONStore
	Routes          *routes.Factory
	ProviderFactory ports.ProviderFactory
	Evaluations     *evaluations.FileStore
	Index           *evaluations.SQLiteIndex
	Writer          *markdown.Writer

	GenerateService *generate.Service
	EvaluateService *evaluate.Service
	DoctorService   *doctor.Service

	// ProviderDecorator, when set, wraps every provider handle as it is built.
	ProviderDecorator func(ports.Provider) ports.Provider

	mu        sync.Mutex
	providers map[string]ports.Provider
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, &domain.ConfigError{Field: cfgLoader.Path(), Err: err}
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Verbose: opts.Verbose || debugFromEnv(),
		File:    cfg.Logging.File,
	})
	if err != nil {
		return nil, err
	}

	defaults, err := prompts.RubricDefaults(assets.DefaultPromptsJSON)
	if err != nil {
		return nil, fmt.Errorf("parse embedded prompts: %w", err)
	}
	promptStore, err := prompts.NewJSONStore(cfg.Prompts.StoreFile, cfg.GetPromptCacheSize(), defaults, log)
	if err != nil {
		return nil, err
	}
	if err := promptStore.Load(); err != nil {
		return nil, err
	}

	fileStore := evaluations.NewFileStore(cfg.Output.EvaluationsDir)
	index, err := evaluations.NewSQLiteIndex(cfg.Evaluation.IndexFile, fileStore)
	if err != nil {
		log.Warn("evaluation index unavailable, falling back to file scan", map[string]interface{}{
			"path":  cfg.Evaluation.IndexFile,
			"error": err.Error(),
		})
	}

	routeFactory := routes.NewFactory(cfg.GetAppAttr())
	writer := markdown.NewWriter()

	return &Container{
		Config:          cfg,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		Logger:          log,
		Prompts:         promptStore,
		Routes:          routeFactory,
		ProviderFactory: ai.NewFactory(log),
		Evaluations:     fileStore,
		Index:           index,
		Writer:          writer,
		GenerateService: &generate.Service{
			Routes:  routeFactory,
			Prompts: promptStore,
			Writer:  writer,
			Logger:  log,
		},
		EvaluateService: &evaluate.Service{
			Prompts: promptStore,
			Store:   fileStore,
			Index:   index,
			Logger:  log,
		},
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Prompts:        promptStore,
			Index:          index,
		},
		providers: map[string]ports.Provider{},
	}, nil
}

// Provider returns the provider handle for a model, building it once per process.
// An empty name selects the default model.
func (c *Container) Provider(name string) (ports.Provider, error) {
	model, err := c.Config.ResolveModel(name)
	if err != nil {
		return nil, &domain.ConfigError{Field: "model", Err: err}
	}
	return c.providerFor(model)
}

// CriticProvider returns the handle for the configured critic model.
// An explicit name overrides the configured critic.
func (c *Container) CriticProvider(name string) (ports.Provider, error) {
	if name != "" {
		return c.Provider(name)
	}
	model, err := c.Config.GetCriticModel()
	if err != nil {
		return nil, &domain.ConfigError{Field: "preferences.critic_model", Err: err}
	}
	return c.providerFor(model)
}

func (c *Container) providerFor(model domain.ModelDefinition) (ports.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if provider, ok := c.providers[model.Name]; ok {
		return provider, nil
	}
	provider, err := c.ProviderFactory.ForModel(model)
	if err != nil {
		return nil, err
	}
	if c.ProviderDecorator != nil {
		provider = c.ProviderDecorator(provider)
	}
	c.providers[model.Name] = provider
	return provider, nil
}

// Parser returns the score parser for mode, defaulting to the configured one.
func (c *Container) Parser(mode string, endpoints bool) (ports.ScoreParser, error) {
	if mode == "" {
		mode = c.Config.Evaluation.Parser
		if endpoints {
			mode = c.Config.Evaluation.EndpointParser
		}
	}
	parsed, err := domain.ParseParserMode(mode)
	if err != nil {
		return nil, err
	}
	return scoring.ForMode(parsed, c.Logger)
}

// Close releases the index database and flushes logs.
func (c *Container) Close() error {
	var err error
	if c.Index != nil {
		err = c.Index.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return err
}

func debugFromEnv() bool {
	value := os.Getenv(EnvDebug)
	return value == "1" || strings.EqualFold(value, "true")
}
