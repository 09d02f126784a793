package domain

import "fmt"

// ParserMode selects a score parsing strategy.
type ParserMode string

const (
	ParserRegex     ParserMode = "regex"
	ParserDelimited ParserMode = "delimited"
	// ParserDelimitedFull splits the whole reply, so trailing explanation lines
	// turn their segment into a parse failure. Scores match historical runs.
	ParserDelimitedFull ParserMode = "delimited-full"
)

// ParseParserMode validates a parser name.
func ParseParserMode(value string) (ParserMode, error) {
	switch ParserMode(value) {
	case ParserRegex, ParserDelimited, ParserDelimitedFull:
		return ParserMode(value), nil
	default:
		return "", &ConfigError{Field: "parser", Err: fmt.Errorf("%w: %q", ErrUnsupportedParser, value)}
	}
}

// EvaluationScore holds the rubric scores of one critique. Nil means the
// critic reply did not mention the criterion.
type EvaluationScore struct {
	Version      string `json:"-"`
	Completeness *int   `json:"completeness"`
	Clarity      *int   `json:"clarity"`
	Accuracy     *int   `json:"accuracy"`
	Relevance    *int   `json:"relevance"`
	Tone         *int   `json:"tone,omitempty"`
	Overall      *int   `json:"overall"`
}

// Fields returns the named score pointers in rubric order.
func (s EvaluationScore) Fields() []ScoreField {
	return []ScoreField{
		{Name: "completeness", Value: s.Completeness},
		{Name: "clarity", Value: s.Clarity},
		{Name: "accuracy", Value: s.Accuracy},
		{Name: "relevance", Value: s.Relevance},
		{Name: "tone", Value: s.Tone},
		{Name: "overall", Value: s.Overall},
	}
}

// OutOfRange lists present fields outside [1,10].
func (s EvaluationScore) OutOfRange() []string {
	var out []string
	for _, field := range s.Fields() {
		if field.Value != nil && (*field.Value < 1 || *field.Value > 10) {
			out = append(out, field.Name)
		}
	}
	return out
}

// OverallOrZero returns Overall, or 0 when absent.
func (s EvaluationScore) OverallOrZero() int {
	if s.Overall == nil {
		return 0
	}
	return *s.Overall
}

// ScoreField is a named view over one EvaluationScore field.
type ScoreField struct {
	Name  string
	Value *int
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// EvaluationRecord is one persisted critique. Endpoint holds EndpointRecord.Key
// for per-endpoint critiques and is empty for document-level ones.
type EvaluationRecord struct {
	ID          string          `json:"id"`
	Version     string          `json:"version"`
	Endpoint    string          `json:"endpoint,omitempty"`
	Timestamp   string          `json:"timestamp"`
	Scores      EvaluationScore `json:"scores"`
	RawResponse string          `json:"raw_response"`
	File        string          `json:"-"`
}

// ScoreParse is the outcome of parsing a critic reply.
type ScoreParse struct {
	Scores EvaluationScore
	Labels map[string]int
	Issues []string
}

// VersionSummary aggregates indexed critiques of one prompt version.
type VersionSummary struct {
	Version        string
	Runs           int
	TotalOverall   int
	AverageOverall float64
	LatestAt       string
}
