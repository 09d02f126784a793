package prompts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/apidocgen/assets"
	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/pkg/logger"
)

func writeStore(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolveReturnsExactTextOrSentinel(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{"v1": "Describe {path}", "v2": "Explain {path} ({methods})"}`)
	store, err := NewJSONStore(path, 0, nil, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Load())

	assert.Equal(t, "Describe {path}", store.Resolve("v1").Text)
	assert.Equal(t, "Explain {path} ({methods})", store.Resolve("v2").Text)

	missing := store.Resolve("v9")
	assert.Equal(t, "Default prompt not found.", missing.Text)
	assert.True(t, missing.IsFallback())
	assert.Equal(t, []string{"v1", "v2"}, store.Versions())
}

func TestDefaultsSitUnderFileEntries(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{"critic:readme": "custom rubric"}`)
	defaults := map[string]string{"critic:readme": "default rubric", "critic:endpoint": "endpoint rubric"}
	store, err := NewJSONStore(path, 2, defaults, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Load())

	assert.Equal(t, "custom rubric", store.Resolve(domain.CriticReadmeKey).Text)
	assert.Equal(t, "endpoint rubric", store.Resolve(domain.CriticEndpointKey).Text)
}

func TestEmbeddedDefaultsOnlyBackRubrics(t *testing.T) {
	path := writeStore(t, t.TempDir(), `{"v1": "Document {path} {methods} {parameters}"}`)
	defaults, err := RubricDefaults(assets.DefaultPromptsJSON)
	require.NoError(t, err)
	require.Contains(t, defaults, domain.CriticReadmeKey)
	require.Contains(t, defaults, domain.CriticEndpointKey)

	store, err := NewJSONStore(path, 0, defaults, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Load())

	assert.Equal(t, "Document {path} {methods} {parameters}", store.Resolve("v1").Text)
	for _, version := range []string{"v2", "v3", "bulk"} {
		assert.Equal(t, domain.PromptNotFound, store.Resolve(version).Text, version)
	}
	assert.False(t, store.Resolve(domain.CriticEndpointKey).IsFallback())
	assert.Equal(t, []string{domain.CriticEndpointKey, domain.CriticReadmeKey, "v1"}, store.Versions())
}

func TestIsRubricKey(t *testing.T) {
	assert.True(t, IsRubricKey(domain.CriticReadmeKey))
	assert.True(t, IsRubricKey(domain.CriticEndpointKey))
	assert.False(t, IsRubricKey("v1"))
	assert.False(t, IsRubricKey("bulk"))
}

func TestStoreReloadsWhenFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeStore(t, dir, `{"v1": "first"}`)
	store, err := NewJSONStore(path, 2, nil, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Load())
	assert.Equal(t, "first", store.Resolve("v1").Text)

	require.NoError(t, os.WriteFile(path, []byte(`{"v1": "second"}`), 0o644))
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.Equal(t, "second", store.Resolve("v1").Text)
}

func TestLoadFailuresAreConfigErrors(t *testing.T) {
	dir := t.TempDir()

	store, err := NewJSONStore(filepath.Join(dir, "absent.json"), 0, nil, logger.NewNop())
	require.NoError(t, err)
	err = store.Load()
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	broken := writeStore(t, dir, `{"v1": `)
	store, err = NewJSONStore(broken, 0, nil, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, domain.IsConfigError(store.Load()))
}
