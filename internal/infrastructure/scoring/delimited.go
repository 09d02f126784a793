package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// labelFields maps lower-cased rubric labels to score fields.
var labelFields = map[string]string{
	"completeness":                 "completeness",
	"clarity":                      "clarity",
	"accuracy":                     "accuracy",
	"relevance":                    "relevance",
	"professional tone and format": "tone",
	"tone":                         "tone",
	"overall":                      "overall",
	"overall score":                "overall",
}

// DelimitedParser reads "Label:score" segments separated by commas.
//
// By default only the first non-empty line is parsed, with Markdown backticks and
// asterisks stripped, because the rubric asks for explanations below the scores.
// A reply with explanation lines therefore scores its real Overall here, where a
// whole-response split scores 0. Use WholeResponse to keep totals comparable with
// evaluations produced by the whole-response convention.
type DelimitedParser struct {
	logger ports.Logger
	whole  bool
}

// NewDelimitedParser creates a DelimitedParser.
func NewDelimitedParser(logger ports.Logger) *DelimitedParser {
	return &DelimitedParser{logger: logger}
}

// WholeResponse makes the parser split the entire reply without any cleanup.
func (p *DelimitedParser) WholeResponse() *DelimitedParser {
	p.whole = true
	return p
}

func (p *DelimitedParser) Mode() domain.ParserMode {
	if p.whole {
		return domain.ParserDelimitedFull
	}
	return domain.ParserDelimited
}

func (p *DelimitedParser) Parse(version, text string) domain.ScoreParse {
	result := domain.ScoreParse{
		Scores: domain.EvaluationScore{Version: version},
		Labels: map[string]int{},
	}

	body, cutset := firstLine(text), "`*"
	if p.whole {
		body, cutset = strings.TrimSpace(text), ""
	}

	failed := false
	for _, segment := range strings.Split(body, ",") {
		label, raw, found := strings.Cut(segment, ":")
		label = strings.Trim(strings.TrimSpace(label), cutset)
		raw = strings.Trim(strings.TrimSpace(raw), cutset)
		if !found {
			failed = true
			result.Issues = append(result.Issues, fmt.Sprintf("segment %q has no ':'", strings.TrimSpace(segment)))
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			failed = true
			result.Issues = append(result.Issues, fmt.Sprintf("segment %q: %v", strings.TrimSpace(segment), err))
			continue
		}
		result.Labels[label] = value
		if field, ok := labelFields[strings.ToLower(label)]; ok {
			assignField(&result.Scores, field, value)
		}
	}

	var substituted []string
	if failed {
		if p.logger != nil {
			p.logger.Warn("failed to parse critic scores", map[string]interface{}{
				"version": version,
				"issues":  result.Issues,
			})
		}
		result.Scores.Overall = domain.IntPtr(0)
		substituted = append(substituted, "overall")
	}
	if result.Scores.Overall == nil {
		result.Scores.Overall = domain.IntPtr(0)
		substituted = append(substituted, "overall")
	}

	flagOutOfRange(&result, p.logger, substituted...)
	return result
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return strings.Trim(trimmed, "`")
		}
	}
	return ""
}

var _ ports.ScoreParser = (*DelimitedParser)(nil)
