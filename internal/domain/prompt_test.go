package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
		wantErr  bool
	}{
		{
			name:     "named placeholders",
			template: "Path {path} uses {methods}",
			values:   map[string]string{"path": "/hello", "methods": "GET"},
			want:     "Path /hello uses GET",
		},
		{
			name:     "escaped braces",
			template: `Return {{"message": "{path}"}}`,
			values:   map[string]string{"path": "/hello"},
			want:     `Return {"message": "/hello"}`,
		},
		{
			name:     "extra values ignored",
			template: "{path}",
			values:   map[string]string{"path": "/a", "code": "x"},
			want:     "/a",
		},
		{
			name:     "missing value",
			template: "{path} {parameters}",
			values:   map[string]string{"path": "/a"},
			wantErr:  true,
		},
		{
			name:     "stray closing brace",
			template: "oops }",
			wantErr:  true,
		},
		{
			name:     "unclosed placeholder",
			template: "{path",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.FillTemplate(tt.template, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillReportsMissingNames(t *testing.T) {
	_, err := domain.FillTemplate("{b} {a} {b}", map[string]string{})
	var missing *domain.MissingValuesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"a", "b"}, missing.Names)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"api_file_content", "generated_readme"},
		domain.Placeholders("{{x}} {api_file_content} and {generated_readme} {api_file_content}"))
}
