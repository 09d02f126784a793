package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/infrastructure/cli/helpers"
)

const (
	msgNoEvaluationsRecorded = "No evaluations recorded yet."
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the evaluation run index",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryCompareCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listEvaluations(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistoryCompareCommand creates the 'history compare' subcommand
func newHistoryCompareCommand(container *app.Container) *cobra.Command {
	var versions string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare prompt versions across all recorded evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareVersions(cmd.Context(), cmd.OutOrStdout(), container, helpers.SplitVersions(versions, nil))
		},
	}

	cmd.Flags().StringVar(&versions, "versions", "", "Comma separated versions (default: all)")
	return cmd
}

// listEvaluations lists recent index rows
func listEvaluations(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	if container.Index == nil {
		return fmt.Errorf(ErrEvaluationIndexUnavailable)
	}

	records, err := container.Index.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluations: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, msgNoEvaluationsRecorded)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tVERSION\tENDPOINT\tOVERALL\tFILE")
	for _, rec := range records {
		endpoint := rec.Endpoint
		if endpoint == "" {
			endpoint = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			rec.Timestamp,
			rec.Version,
			endpoint,
			helpers.FormatScore(rec.Scores.Overall),
			rec.File)
	}
	return tw.Flush()
}

// compareVersions prints per-version aggregates
func compareVersions(ctx context.Context, out io.Writer, container *app.Container, versions []string) error {
	if container.Index == nil {
		return fmt.Errorf(ErrEvaluationIndexUnavailable)
	}

	summaries, err := container.Index.Summaries(ctx, versions)
	if err != nil {
		return fmt.Errorf("failed to summarise evaluations: %w", err)
	}
	helpers.PrintSummaries(out, summaries)
	return nil
}
