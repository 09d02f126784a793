// Package routes extracts endpoint records from a declared route manifest.
//
// A manifest is a YAML or JSON export of a web application's route table. Adapters
// interpret the application section in the shape of a specific framework.
package routes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/apidocgen/internal/domain"
)

// Manifest is the on-disk route export. App sections are keyed by attribute name.
type Manifest struct {
	Framework string                 `yaml:"framework"`
	Source    string                 `yaml:"source"`
	Apps      map[string]AppManifest `yaml:",inline"`

	path string
}

// AppManifest holds both framework shapes; an adapter reads only its own.
type AppManifest struct {
	Routes []FastAPIRoute `yaml:"routes"`
	URLMap []FlaskRule    `yaml:"url_map"`
}

// FastAPIRoute mirrors one entry of a FastAPI application's route list.
type FastAPIRoute struct {
	Kind    string   `yaml:"kind"`
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Methods []string `yaml:"methods"`
	Params  []string `yaml:"params"`
	Source  string   `yaml:"source"`
	Doc     string   `yaml:"doc"`
}

// FlaskRule mirrors one rule of a Flask url_map.
type FlaskRule struct {
	Endpoint  string   `yaml:"endpoint"`
	Rule      string   `yaml:"rule"`
	Methods   []string `yaml:"methods"`
	Arguments []string `yaml:"arguments"`
	Source    string   `yaml:"source"`
	Doc       string   `yaml:"doc"`
}

// LoadManifest reads and parses a manifest. JSON is accepted since it is valid YAML.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ConfigError{Field: "api_file", Err: fmt.Errorf("%w: %s", domain.ErrMissingInput, path)}
		}
		return nil, fmt.Errorf("read route manifest: %w", err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse route manifest %s: %w", path, err)
	}
	manifest.path = path
	return &manifest, nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// App returns the application section stored under attr.
func (m *Manifest) App(attr string) (AppManifest, bool) {
	app, ok := m.Apps[attr]
	return app, ok
}

// SourcePath resolves the API source file relative to the manifest.
// Without a declared source the manifest itself is returned.
func (m *Manifest) SourcePath() string {
	if strings.TrimSpace(m.Source) == "" {
		return m.path
	}
	if filepath.IsAbs(m.Source) {
		return m.Source
	}
	return filepath.Join(filepath.Dir(m.path), m.Source)
}

// BaseName is the source file name without extension, used to name reports.
func (m *Manifest) BaseName() string {
	base := filepath.Base(m.SourcePath())
	return strings.TrimSuffix(base, filepath.Ext(base))
}
