package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestEvaluationScore_OutOfRange(t *testing.T) {
	score := domain.EvaluationScore{
		Completeness: domain.IntPtr(8),
		Clarity:      domain.IntPtr(11),
		Overall:      domain.IntPtr(0),
	}
	assert.Equal(t, []string{"clarity", "overall"}, score.OutOfRange())
	assert.Equal(t, 0, domain.EvaluationScore{}.OverallOrZero())
}

func TestParseRunMode(t *testing.T) {
	mode, err := domain.ParseRunMode("2")
	assert.NoError(t, err)
	assert.Equal(t, domain.RunModeAPIByAPI, mode)
	assert.Equal(t, "API-by-API", mode.Label())
	assert.Equal(t, "BatchAPI", domain.RunModeBulk.Label())

	_, err = domain.ParseRunMode("stream")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMode))
	assert.True(t, domain.IsConfigError(err))
}

func TestParseParserMode(t *testing.T) {
	_, err := domain.ParseParserMode("json")
	assert.ErrorIs(t, err, domain.ErrUnsupportedParser)

	mode, err := domain.ParseParserMode("delimited-full")
	assert.NoError(t, err)
	assert.Equal(t, domain.ParserDelimitedFull, mode)
}
