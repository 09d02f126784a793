package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/application/generate"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// NewRootCmd wires the cobra root command. The returned func releases the container.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func() error, error) {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose, ConfigPath: opts.ConfigPath})
	if err != nil {
		return nil, nil, err
	}
	prompter := NewPrompter(nil, nil)
	container.GenerateService.Confirmer = prompter
	container.EvaluateService.Confirmer = prompter
	container.ProviderDecorator = WithSpinner()

	root := &cobra.Command{
		Use:   "apidocgen",
		Short: "apidocgen - LLM-generated API documentation with prompt evaluation",
		Long: "apidocgen documents FastAPI and Flask endpoints with a language model and scores\n" +
			"prompt versions against each other with a critic model.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Both flags are read before the container is built; they are declared here so cobra accepts them.
	root.PersistentFlags().BoolP("verbose", "v", opts.Verbose, "Enable debug logging")
	root.PersistentFlags().String("config", opts.ConfigPath, "Path to config.yaml")

	root.AddCommand(
		newGenerateCommand(container, prompter),
		commands.NewEvaluateCommand(container, prompter),
		commands.NewRoutesCommand(container),
		commands.NewPromptsCommand(container),
		commands.NewModelsCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container.Close, nil
}

func newGenerateCommand(container *app.Container, prompter *Prompter) *cobra.Command {
	var (
		apiFile       string
		outputDir     string
		model         string
		promptVersion string
		mode          string
		framework     string
		title         string
		selectRoutes  bool
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Markdown documentation for an API file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := container.Config
			runMode, err := resolveMode(mode, cfg.Preferences.Mode, prompter)
			if err != nil {
				return err
			}
			provider, err := container.Provider(model)
			if err != nil {
				return err
			}
			if selectRoutes && !prompter.Enabled() {
				return fmt.Errorf("--select needs an interactive terminal")
			}

			req := generate.Request{
				APIFile:              apiFile,
				Framework:            domain.Framework(framework),
				Mode:                 runMode,
				Version:              firstNonEmpty(promptVersion, cfg.Preferences.PromptVersion),
				OutputDir:            firstNonEmpty(outputDir, cfg.Output.Dir),
				Title:                firstNonEmpty(title, cfg.Output.Title),
				Provider:             provider,
				Timeout:              cfg.GetTimeout(),
				InteractiveSelection: selectRoutes,
			}
			if timeout > 0 {
				req.Timeout = timeout
			}

			result, err := container.GenerateService.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			RenderGeneration(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiFile, "api-file", "", "Route manifest exported from the API source (YAML or JSON)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model name (default from config)")
	cmd.Flags().StringVarP(&promptVersion, "prompt-version", "p", "", "Prompt version key in the prompt store")
	cmd.Flags().StringVar(&mode, "mode", "", "bulk or api_by_api (asks when omitted on a terminal)")
	cmd.Flags().StringVar(&framework, "framework", "", "fastapi or flask (default from manifest)")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().BoolVar(&selectRoutes, "select", false, "Confirm each endpoint before documenting it")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-call timeout (default from config)")
	_ = cmd.MarkFlagRequired("api-file")

	return cmd
}

// resolveMode picks the flag, then the configured mode, then asks on a terminal.
func resolveMode(flag, preferred string, chooser *Prompter) (domain.RunMode, error) {
	if flag != "" {
		return domain.ParseRunMode(flag)
	}
	if preferred != "" {
		return domain.ParseRunMode(preferred)
	}
	if chooser != nil && chooser.Enabled() {
		return chooser.ChooseMode()
	}
	return domain.RunModeAPIByAPI, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
