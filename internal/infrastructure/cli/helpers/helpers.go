package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
)

// SplitVersions parses a comma separated version list, dropping blanks and duplicates.
// An empty input yields fallback.
func SplitVersions(input string, fallback []string) []string {
	if strings.TrimSpace(input) == "" {
		return append([]string(nil), fallback...)
	}
	seen := map[string]struct{}{}
	var versions []string
	for _, part := range strings.Split(input, ",") {
		version := strings.TrimSpace(part)
		if version == "" {
			continue
		}
		if _, dup := seen[version]; dup {
			continue
		}
		seen[version] = struct{}{}
		versions = append(versions, version)
	}
	return versions
}

// DocumentsDir returns <output>/<model>/<mode label>, where generated reports live per version.
func DocumentsDir(outputDir, model string, mode domain.RunMode) string {
	return filepath.Join(outputDir, model, mode.Label())
}

// LatestDocument returns the newest Markdown file in dir.
// Report names end in a sortable timestamp, so ties on modification time fall back to the name.
func LatestDocument(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no generated documents in %s", domain.ErrMissingInput, dir)
		}
		return "", fmt.Errorf("read documents dir: %w", err)
	}

	type candidate struct {
		path  string
		mtime int64
	}
	var docs []candidate
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, candidate{path: filepath.Join(dir, entry.Name()), mtime: info.ModTime().UnixNano()})
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: no generated documents in %s", domain.ErrMissingInput, dir)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].mtime == docs[j].mtime {
			return docs[i].path > docs[j].path
		}
		return docs[i].mtime > docs[j].mtime
	})
	return docs[0].path, nil
}

// ReadText reads a whole file, naming it in the error.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrMissingInput, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
