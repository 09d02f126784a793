package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/application/evaluate"
	"github.com/doeshing/apidocgen/internal/application/generate"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/apidocgen/internal/ports"
)

// NewEvaluateCommand creates the evaluate command with its docs and endpoints subcommands
func NewEvaluateCommand(container *app.Container, confirmer ports.Confirmer) *cobra.Command {
	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score prompt versions with a critic model",
	}

	evaluateCmd.AddCommand(
		newEvaluateDocsCommand(container, confirmer),
		newEvaluateEndpointsCommand(container, confirmer),
	)
	return evaluateCmd
}

// evaluateFlags are shared by both subcommands
type evaluateFlags struct {
	versions    string
	apiFile     string
	framework   string
	model       string
	critic      string
	parser      string
	reuse       bool
	noReuse     bool
	interactive bool
	timeout     time.Duration
}

func (f *evaluateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.versions, "versions", "", "Comma separated prompt versions (default from config)")
	cmd.Flags().StringVar(&f.apiFile, "api-file", "", "Route manifest exported from the API source")
	cmd.Flags().StringVar(&f.framework, "framework", "", "fastapi or flask (default from manifest)")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Generation model (default from config)")
	cmd.Flags().StringVar(&f.critic, "critic", "", "Critic model (default preferences.critic_model)")
	cmd.Flags().StringVar(&f.parser, "parser", "", "Score parser: regex, delimited or delimited-full")
	cmd.Flags().BoolVar(&f.reuse, "reuse", false, "Reuse stored evaluations without asking")
	cmd.Flags().BoolVar(&f.noReuse, "no-reuse", false, "Always call the critic, even when a stored evaluation exists")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "Ask before reusing each stored evaluation")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Per-call timeout (default from config)")
}

// options resolves the critic, parser and reuse policy.
func (f *evaluateFlags) options(container *app.Container, endpoints bool) (evaluate.Options, error) {
	if f.reuse && f.noReuse {
		return evaluate.Options{}, fmt.Errorf(ErrReuseFlagsConflict)
	}
	critic, err := container.CriticProvider(f.critic)
	if err != nil {
		return evaluate.Options{}, err
	}
	parser, err := container.Parser(f.parser, endpoints)
	if err != nil {
		return evaluate.Options{}, err
	}

	opts := evaluate.Options{
		Critic:         critic,
		Parser:         parser,
		ReuseIfPresent: container.Config.Evaluation.ReuseIfPresent,
		Interactive:    f.interactive,
		Timeout:        container.Config.GetTimeout(),
	}
	switch {
	case f.reuse:
		opts.ReuseIfPresent = true
	case f.noReuse:
		opts.ReuseIfPresent = false
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	return opts, nil
}

func (f *evaluateFlags) versionList(container *app.Container) ([]string, error) {
	versions := helpers.SplitVersions(f.versions, container.Config.Evaluation.Versions)
	if len(versions) == 0 {
		return nil, fmt.Errorf(ErrNoVersions)
	}
	return versions, nil
}

func newEvaluateDocsCommand(container *app.Container, confirmer ports.Confirmer) *cobra.Command {
	var (
		flags      evaluateFlags
		docsDir    string
		regenerate bool
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Critique the generated README of each prompt version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.interactive && !confirmer.Enabled() {
				return fmt.Errorf("--interactive needs a terminal")
			}
			versions, err := flags.versionList(container)
			if err != nil {
				return err
			}
			opts, err := flags.options(container, false)
			if err != nil {
				return err
			}
			generator, err := container.Provider(flags.model)
			if err != nil {
				return err
			}
			if regenerate && flags.apiFile == "" {
				return fmt.Errorf("--regenerate needs --api-file")
			}
			if outputDir == "" {
				outputDir = container.Config.Output.Dir
			}
			if docsDir == "" {
				docsDir = helpers.DocumentsDir(outputDir, generator.Model().Name, domain.RunModeAPIByAPI)
			}

			documents, err := collectDocuments(cmd.Context(), container, versions, docsRequest{
				docsDir:    docsDir,
				outputDir:  outputDir,
				apiFile:    flags.apiFile,
				framework:  domain.Framework(flags.framework),
				regenerate: regenerate,
				generator:  generator,
				timeout:    opts.Timeout,
			}, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			apiContent := ""
			if flags.apiFile != "" {
				apiContent, err = apiSourceText(container, flags.apiFile, domain.Framework(flags.framework))
				if err != nil {
					return err
				}
			}

			report, err := container.EvaluateService.EvaluateDocuments(cmd.Context(), evaluate.DocumentsRequest{
				Options:        opts,
				Versions:       versions,
				Documents:      documents,
				APIFileContent: apiContent,
			})
			if err != nil {
				return err
			}
			renderEvaluationReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&docsDir, "docs-dir", "", "Directory holding <version>/ report folders (default <output>/<model>/API-by-API)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Generate a fresh per-endpoint report for each version first")
	return cmd
}

type docsRequest struct {
	docsDir    string
	outputDir  string
	apiFile    string
	framework  domain.Framework
	regenerate bool
	generator  ports.Provider
	timeout    time.Duration
}

// collectDocuments returns the README text per version, regenerating when asked.
func collectDocuments(ctx context.Context, container *app.Container, versions []string, req docsRequest, out io.Writer) (map[string]string, error) {
	documents := make(map[string]string, len(versions))
	for _, version := range versions {
		var path string
		if req.regenerate {
			result, err := container.GenerateService.Run(ctx, generate.Request{
				APIFile:   req.apiFile,
				Framework: req.framework,
				Mode:      domain.RunModeAPIByAPI,
				Version:   version,
				OutputDir: req.outputDir,
				Title:     container.Config.Output.Title,
				Provider:  req.generator,
				Timeout:   req.timeout,
			})
			if err != nil {
				return nil, err
			}
			path = result.Path
			fmt.Fprintf(out, "Generated %s for %s\n", path, version)
		} else {
			latest, err := helpers.LatestDocument(filepath.Join(req.docsDir, version))
			if err != nil {
				return nil, err
			}
			path = latest
		}

		text, err := helpers.ReadText(path)
		if err != nil {
			return nil, err
		}
		documents[version] = text
	}
	return documents, nil
}

// apiSourceText reads the API source file a manifest was exported from.
func apiSourceText(container *app.Container, apiFile string, framework domain.Framework) (string, error) {
	source, err := container.Routes.Open(apiFile, framework)
	if err != nil {
		return "", err
	}
	return helpers.ReadText(source.SourcePath())
}

func newEvaluateEndpointsCommand(container *app.Container, confirmer ports.Confirmer) *cobra.Command {
	var (
		flags evaluateFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "Generate and critique documentation per endpoint and prompt version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.apiFile == "" {
				return fmt.Errorf(ErrAPIFileRequired)
			}
			if flags.interactive && !confirmer.Enabled() {
				return fmt.Errorf("--interactive needs a terminal")
			}
			versions, err := flags.versionList(container)
			if err != nil {
				return err
			}
			opts, err := flags.options(container, true)
			if err != nil {
				return err
			}
			generator, err := container.Provider(flags.model)
			if err != nil {
				return err
			}

			source, err := container.Routes.Open(flags.apiFile, domain.Framework(flags.framework))
			if err != nil {
				return err
			}
			endpoints, err := source.Extract(cmd.Context())
			if err != nil {
				return err
			}
			if len(endpoints) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoRoutes)
				return nil
			}

			report, err := container.EvaluateService.EvaluateEndpoints(cmd.Context(), evaluate.EndpointsRequest{
				Options:   opts,
				Versions:  versions,
				Endpoints: endpoints,
				Generator: generator,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			renderEvaluationReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "Evaluate only the first N endpoints (0 = all)")
	return cmd
}

func renderEvaluationReport(out io.Writer, report evaluate.Report) {
	helpers.PrintScoreTable(out, report.Versions, report.Scores)
	fmt.Fprintln(out)
	helpers.PrintTotals(out, report.Totals, report.Reused)
}
