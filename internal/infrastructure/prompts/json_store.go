// Package prompts resolves versioned prompt templates from a JSON store.
package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// JSONStore reads a {version: template} object from disk.
// Parsed files are memoised by path and modification time, so edits are picked up
// without re-parsing unchanged files. Defaults sit underneath the file's entries.
type JSONStore struct {
	path     string
	defaults map[string]string
	cache    *lru.Cache[string, map[string]string]
	logger   ports.Logger

	mu      sync.Mutex
	current map[string]string
}

// NewJSONStore creates a store over path. Call Load before Resolve.
func NewJSONStore(path string, cacheSize int, defaults map[string]string, logger ports.Logger) (*JSONStore, error) {
	if cacheSize <= 0 {
		cacheSize = domain.DefaultPromptCacheSize
	}
	cache, err := lru.New[string, map[string]string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create prompt cache: %w", err)
	}
	return &JSONStore{path: path, defaults: defaults, cache: cache, logger: logger}, nil
}

// ParseTemplates decodes a prompt store document.
func ParseTemplates(data []byte) (map[string]string, error) {
	templates := map[string]string{}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// RubricDefaults decodes an embedded prompt store and keeps only the critic rubrics.
// Generation versions never fall back to embedded text: an absent version resolves
// to the PromptNotFound sentinel.
func RubricDefaults(data []byte) (map[string]string, error) {
	templates, err := ParseTemplates(data)
	if err != nil {
		return nil, err
	}
	for key := range templates {
		if !IsRubricKey(key) {
			delete(templates, key)
		}
	}
	return templates, nil
}

// IsRubricKey reports whether key names a critic rubric rather than a generation version.
func IsRubricKey(key string) bool {
	return strings.HasPrefix(key, domain.CriticKeyPrefix)
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the store file. Failures are configuration errors.
func (s *JSONStore) Load() error {
	templates, err := s.read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = templates
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) read() (map[string]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.ConfigError{Field: "prompts.store_file", Err: fmt.Errorf("%w: %s", domain.ErrMissingInput, s.path)}
		}
		return nil, &domain.ConfigError{Field: "prompts.store_file", Err: err}
	}
	key := fmt.Sprintf("%s@%d", s.path, info.ModTime().UnixNano())
	if templates, ok := s.cache.Get(key); ok {
		return templates, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.ConfigError{Field: "prompts.store_file", Err: err}
	}
	parsed, err := ParseTemplates(data)
	if err != nil {
		return nil, &domain.ConfigError{Field: "prompts.store_file", Err: fmt.Errorf("parse %s: %w", s.path, err)}
	}

	merged := make(map[string]string, len(s.defaults)+len(parsed))
	for version, text := range s.defaults {
		merged[version] = text
	}
	for version, text := range parsed {
		merged[version] = text
	}
	s.cache.Add(key, merged)
	return merged, nil
}

// templates returns the freshest parse, keeping the last good one if the file became unreadable.
func (s *JSONStore) templates() map[string]string {
	fresh, err := s.read()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.current = fresh
	} else if s.logger != nil {
		s.logger.Warn("prompt store reload failed", map[string]interface{}{"path": s.path, "error": err.Error()})
	}
	if s.current == nil {
		return s.defaults
	}
	return s.current
}

// Resolve returns the template for version, or the PromptNotFound sentinel.
func (s *JSONStore) Resolve(version string) domain.PromptTemplate {
	text, ok := s.templates()[version]
	if !ok {
		if s.logger != nil {
			s.logger.Warn("prompt version not found", map[string]interface{}{"version": version, "path": s.path})
		}
		text = domain.PromptNotFound
	}
	return domain.PromptTemplate{Version: version, Text: text}
}

// Versions lists the stored keys in sorted order.
func (s *JSONStore) Versions() []string {
	templates := s.templates()
	versions := make([]string, 0, len(templates))
	for version := range templates {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

var _ ports.PromptStore = (*JSONStore)(nil)
