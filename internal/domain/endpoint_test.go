package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/internal/domain"
)

func TestNewEndpointRecord_NormalizesMethods(t *testing.T) {
	rec := domain.NewEndpointRecord("users", "/users", []string{"post", "GET", " get "}, []string{"id"})
	assert.Equal(t, []string{"GET", "POST"}, rec.Methods)
	require.NoError(t, rec.Validate())
}

func TestEndpointRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  domain.EndpointRecord
		wantErr bool
	}{
		{name: "valid", record: domain.NewEndpointRecord("a", "/a", []string{"GET"}, nil)},
		{name: "empty path", record: domain.NewEndpointRecord("a", "", []string{"GET"}, nil), wantErr: true},
		{name: "no methods", record: domain.NewEndpointRecord("a", "/a", nil, nil), wantErr: true},
		{name: "unknown verb", record: domain.NewEndpointRecord("a", "/a", []string{"FETCH"}, nil), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEndpointRecord_PromptValues(t *testing.T) {
	rec := domain.NewEndpointRecord("say_hello", "/hello", []string{"GET"}, nil)
	values := rec.PromptValues()
	assert.Equal(t, "/hello", values["path"])
	assert.Equal(t, "GET", values["methods"])
	assert.Equal(t, "None", values["parameters"])
	assert.Equal(t, "Code not found", values["code"])
	assert.Equal(t, "No description available.", values["description"])

	rec.Parameters = []string{"name", "age"}
	rec.SourceCode = domain.StringPtr("def say_hello(): ...")
	rec.Docstring = domain.StringPtr("Say hello.")
	values = rec.PromptValues()
	assert.Equal(t, "name, age", values["parameters"])
	assert.Equal(t, "def say_hello(): ...", values["function_content"])
	assert.Equal(t, "Say hello.", values["description"])
}

func TestEndpointRecord_Key(t *testing.T) {
	items := domain.NewEndpointRecord(domain.UnnamedAPI, "/items", []string{"post", "get"}, nil)
	users := domain.NewEndpointRecord(domain.UnnamedAPI, "/users", []string{"GET"}, nil)

	assert.Equal(t, "GET,POST /items", items.Key())
	assert.Equal(t, "GET /users", users.Key())
	assert.NotEqual(t, items.Key(), users.Key())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "say-hello", domain.Slugify("say_hello"))
	assert.Equal(t, "users-int-user-id", domain.Slugify("/users/<int:user_id>"))
	assert.Equal(t, "", domain.Slugify("///"))
}
