// Package scoring turns free-text critic replies into rubric scores.
//
// Two strategies exist. RegexParser finds "<Criterion>: N/10" anywhere in the text and
// leaves unmentioned criteria absent. DelimitedParser reads a single
// "Label:score, Label:score" line and zero-defaults Overall.
package scoring

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

type criterion struct {
	field    string
	patterns []*regexp.Regexp
}

func scorePattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `:\s*(\d+)/10`)
}

// criteria is ordered: the first matching pattern of each entry wins.
var criteria = []criterion{
	{field: "completeness", patterns: []*regexp.Regexp{scorePattern("Completeness")}},
	{field: "clarity", patterns: []*regexp.Regexp{scorePattern("Clarity")}},
	{field: "accuracy", patterns: []*regexp.Regexp{scorePattern("Accuracy")}},
	{field: "relevance", patterns: []*regexp.Regexp{scorePattern("Relevance")}},
	{field: "tone", patterns: []*regexp.Regexp{scorePattern("Professional Tone and Format"), scorePattern("Tone")}},
	{field: "overall", patterns: []*regexp.Regexp{scorePattern("Overall Score"), scorePattern("Overall")}},
}

// RegexParser extracts "<Criterion>: N/10" scores case-insensitively.
type RegexParser struct {
	logger ports.Logger
}

// NewRegexParser creates a RegexParser.
func NewRegexParser(logger ports.Logger) *RegexParser {
	return &RegexParser{logger: logger}
}

func (p *RegexParser) Mode() domain.ParserMode {
	return domain.ParserRegex
}

func (p *RegexParser) Parse(version, text string) domain.ScoreParse {
	result := domain.ScoreParse{
		Scores: domain.EvaluationScore{Version: version},
		Labels: map[string]int{},
	}

	for _, c := range criteria {
		for _, pattern := range c.patterns {
			match := pattern.FindStringSubmatch(text)
			if match == nil {
				continue
			}
			value, err := strconv.Atoi(match[1])
			if err != nil {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: %v", c.field, err))
				break
			}
			result.Labels[c.field] = value
			assignField(&result.Scores, c.field, value)
			break
		}
	}

	flagOutOfRange(&result, p.logger)
	return result
}

var _ ports.ScoreParser = (*RegexParser)(nil)
