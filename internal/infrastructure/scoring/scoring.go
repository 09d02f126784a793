package scoring

import (
	"fmt"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// ForMode returns the parser implementing mode.
func ForMode(mode domain.ParserMode, logger ports.Logger) (ports.ScoreParser, error) {
	switch mode {
	case domain.ParserRegex:
		return NewRegexParser(logger), nil
	case domain.ParserDelimited:
		return NewDelimitedParser(logger), nil
	case domain.ParserDelimitedFull:
		return NewDelimitedParser(logger).WholeResponse(), nil
	default:
		return nil, &domain.ConfigError{Field: "evaluation.parser", Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedParser, mode)}
	}
}

func assignField(score *domain.EvaluationScore, field string, value int) {
	v := domain.IntPtr(value)
	switch field {
	case "completeness":
		score.Completeness = v
	case "clarity":
		score.Clarity = v
	case "accuracy":
		score.Accuracy = v
	case "relevance":
		score.Relevance = v
	case "tone":
		score.Tone = v
	case "overall":
		score.Overall = v
	}
}

// flagOutOfRange records, but never clamps, parsed scores outside [1,10].
// Fields named in skip hold substituted values and are not reported.
func flagOutOfRange(result *domain.ScoreParse, logger ports.Logger, skip ...string) {
	var fields []string
	for _, field := range result.Scores.OutOfRange() {
		if !contains(skip, field) {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return
	}
	for _, field := range fields {
		result.Issues = append(result.Issues, fmt.Sprintf("%s out of range [1,10]", field))
	}
	if logger != nil {
		logger.Warn("critic score out of range", map[string]interface{}{
			"version": result.Scores.Version,
			"fields":  fields,
		})
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
