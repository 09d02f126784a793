package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/infrastructure/prompts"
	"github.com/doeshing/apidocgen/internal/ports"
)

// NewPromptsCommand creates the prompts command with all subcommands
func NewPromptsCommand(container *app.Container) *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "Inspect the versioned prompt store",
	}

	promptsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List prompt versions",
			RunE: func(cmd *cobra.Command, args []string) error {
				listPrompts(cmd.OutOrStdout(), container.Prompts.Path(), container.Prompts)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <version>",
			Short: "Print a prompt template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return showPrompt(cmd.OutOrStdout(), container.Prompts, args[0])
			},
		},
	)
	return promptsCmd
}

// listPrompts prints generation versions only; critic rubrics stay internal.
func listPrompts(out io.Writer, path string, store ports.PromptStore) {
	var versions []string
	for _, version := range store.Versions() {
		if !prompts.IsRubricKey(version) {
			versions = append(versions, version)
		}
	}
	if len(versions) == 0 {
		fmt.Fprintln(out, MsgNoPrompts)
		return
	}
	fmt.Fprintf(out, "Prompt store: %s\n", path)
	for _, version := range versions {
		placeholders := domain.Placeholders(store.Resolve(version).Text)
		fmt.Fprintf(out, "  %s %v\n", version, placeholders)
	}
}

func showPrompt(out io.Writer, store ports.PromptStore, version string) error {
	template := store.Resolve(version)
	if template.IsFallback() {
		return fmt.Errorf("prompt version %s not found", version)
	}
	fmt.Fprintln(out, template.Text)
	return nil
}
