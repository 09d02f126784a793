package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/application/generate"
	"github.com/doeshing/apidocgen/internal/domain"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect configured AI models",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsTestCommand(container),
	)

	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newModelsTestCommand creates the 'models test' subcommand
func newModelsTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Test connectivity for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return testModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// listModels lists all configured models
func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPROVIDER\tMODEL ID\tENDPOINT\tROLE")
	for _, model := range cfg.Models {
		var roles []string
		if cfg.Preferences.DefaultModel == model.Name {
			roles = append(roles, "default")
		}
		if cfg.Preferences.CriticModel == model.Name {
			roles = append(roles, "critic")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			model.Name,
			model.Kind(),
			model.ModelID,
			model.Endpoint,
			strings.Join(roles, ","))
	}
	return tw.Flush()
}

// testModel sends a one-line prompt to a specific model
func testModel(ctx context.Context, out io.Writer, container *app.Container, modelName string) error {
	if !container.Config.HasModel(modelName) {
		return fmt.Errorf("model %s not found", modelName)
	}

	provider, err := container.Provider(modelName)
	if err != nil {
		return fmt.Errorf("failed to create provider for model %s: %w", modelName, err)
	}

	reply, err := generate.Call(ctx, provider, ModelTestPrompt, domain.DefaultModelTestTimeout, container.Logger)
	if err != nil {
		return fmt.Errorf("model %s test failed: %w", modelName, err)
	}

	fmt.Fprintf(out, "Model %s responded successfully: %s\n", modelName, firstLine(reply))
	return nil
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}
