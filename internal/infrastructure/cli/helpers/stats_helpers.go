package helpers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/doeshing/apidocgen/internal/domain"
)

// VersionTotal pairs a prompt version with its summed Overall score.
type VersionTotal struct {
	Version string
	Total   int
}

// RankVersions orders totals by score (descending) then by version name (ascending).
func RankVersions(totals map[string]int) []VersionTotal {
	ranked := make([]VersionTotal, 0, len(totals))
	for version, total := range totals {
		ranked = append(ranked, VersionTotal{Version: version, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total == ranked[j].Total {
			return ranked[i].Version < ranked[j].Version
		}
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// FormatScore renders an optional score, "-" when the critic gave none.
func FormatScore(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// PrintScoreTable writes one row per evaluation record.
func PrintScoreTable(out io.Writer, versions []string, scores map[string][]domain.EvaluationRecord) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tENDPOINT\tCOMPLETENESS\tCLARITY\tACCURACY\tRELEVANCE\tTONE\tOVERALL")
	for _, version := range versions {
		for _, rec := range scores[version] {
			endpoint := rec.Endpoint
			if endpoint == "" {
				endpoint = "-"
			}
			s := rec.Scores
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				version, endpoint,
				FormatScore(s.Completeness), FormatScore(s.Clarity), FormatScore(s.Accuracy),
				FormatScore(s.Relevance), FormatScore(s.Tone), FormatScore(s.Overall))
		}
	}
	tw.Flush()
}

// PrintTotals writes the per-version Overall totals, best first.
func PrintTotals(out io.Writer, totals map[string]int, reused map[string]bool) {
	fmt.Fprintln(out, "Total scores:")
	for _, vt := range RankVersions(totals) {
		note := ""
		if reused[vt.Version] {
			note = " (reused)"
		}
		fmt.Fprintf(out, "  %s: %d%s\n", vt.Version, vt.Total, note)
	}
}

// PrintSummaries writes aggregate rows from the evaluation index.
func PrintSummaries(out io.Writer, summaries []domain.VersionSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No evaluations recorded yet.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tRUNS\tTOTAL OVERALL\tAVERAGE\tLATEST")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%s\n", s.Version, s.Runs, s.TotalOverall, s.AverageOverall, s.LatestAt)
	}
	tw.Flush()

	best := summaries[0]
	for _, s := range summaries[1:] {
		if s.AverageOverall > best.AverageOverall {
			best = s
		}
	}
	if best.Runs > 0 {
		fmt.Fprintf(out, "Best average: %s (%s)\n", best.Version, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", best.AverageOverall), "0"), "."))
	}
}
