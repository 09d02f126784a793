package evaluations

import (
	"sort"

	"github.com/doeshing/apidocgen/internal/domain"
)

// Summarize aggregates Overall per version in memory. Absent Overall counts as a run
// but adds nothing to the total. An empty versions slice selects all.
func Summarize(records []domain.EvaluationRecord, versions []string) []domain.VersionSummary {
	wanted := map[string]bool{}
	for _, v := range versions {
		wanted[v] = true
	}

	byVersion := map[string]*domain.VersionSummary{}
	counted := map[string]int{}
	for _, rec := range records {
		if len(wanted) > 0 && !wanted[rec.Version] {
			continue
		}
		summary, ok := byVersion[rec.Version]
		if !ok {
			summary = &domain.VersionSummary{Version: rec.Version}
			byVersion[rec.Version] = summary
		}
		summary.Runs++
		if rec.Scores.Overall != nil {
			summary.TotalOverall += *rec.Scores.Overall
			counted[rec.Version]++
		}
		if rec.Timestamp > summary.LatestAt {
			summary.LatestAt = rec.Timestamp
		}
	}

	out := make([]domain.VersionSummary, 0, len(byVersion))
	for version, summary := range byVersion {
		if n := counted[version]; n > 0 {
			summary.AverageOverall = float64(summary.TotalOverall) / float64(n)
		}
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}
