// Package evaluations persists critic results.
//
// Every critique is written as its own JSON file under critic_evaluations/ and is
// never overwritten. A SQLite index mirrors the files for history queries.
package evaluations

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

const filePrefix = "evaluation_"

// FileStore stores evaluation records as JSON files, one per critique.
type FileStore struct {
	dir   string
	mu    sync.Mutex
	clock func() time.Time
}

// NewFileStore returns a store rooted at dir (typically <output>/critic_evaluations).
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, clock: time.Now}
}

// WithClock overrides the timestamp source.
func (s *FileStore) WithClock(clock func() time.Time) *FileStore {
	s.clock = clock
	return s
}

// Dir exposes the store directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes record to a new file and returns it with ID, Timestamp and File filled in.
// A name collision gets a UUID suffix so earlier evidence is kept.
func (s *FileStore) Save(record domain.EvaluationRecord) (domain.EvaluationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp == "" {
		record.Timestamp = s.clock().Format(domain.TimestampLayout)
	}
	if err := os.MkdirAll(s.dir, domain.DirectoryPermissions); err != nil {
		return record, fmt.Errorf("create evaluation dir: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return record, fmt.Errorf("encode evaluation: %w", err)
	}

	base := fileStem(record)
	path := filepath.Join(s.dir, base+".json")
	for attempt := 0; ; attempt++ {
		err = writeExclusive(path, data)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) || attempt >= 3 {
			return record, fmt.Errorf("write evaluation %s: %w", path, err)
		}
		path = filepath.Join(s.dir, base+"_"+uuid.NewString()[:8]+".json")
	}
	record.File = path
	return record, nil
}

// Latest returns the newest record stored for (version, endpoint).
// An empty endpoint selects document-level critiques.
func (s *FileStore) Latest(version, endpoint string) (domain.EvaluationRecord, bool, error) {
	records, err := s.scan(filePrefix + version + "_*.json")
	if err != nil {
		return domain.EvaluationRecord{}, false, err
	}
	var matches []domain.EvaluationRecord
	for _, rec := range records {
		if rec.Version == version && rec.Endpoint == endpoint {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return domain.EvaluationRecord{}, false, nil
	}
	sortNewestFirst(matches)
	return matches[0], true, nil
}

// Records lists every stored record, newest first.
func (s *FileStore) Records(limit int) ([]domain.EvaluationRecord, error) {
	records, err := s.scan(filePrefix + "*.json")
	if err != nil {
		return nil, err
	}
	sortNewestFirst(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// scan decodes files matching pattern. Unreadable or foreign files are skipped.
func (s *FileStore) scan(pattern string) ([]domain.EvaluationRecord, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return nil, err
	}
	var records []domain.EvaluationRecord
	for _, path := range paths {
		rec, err := ReadRecord(path)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadRecord decodes one evaluation file.
func ReadRecord(path string) (domain.EvaluationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EvaluationRecord{}, err
	}
	var rec domain.EvaluationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.EvaluationRecord{}, fmt.Errorf("decode %s: %w", path, err)
	}
	rec.Scores.Version = rec.Version
	rec.File = path
	return rec, nil
}

func fileStem(record domain.EvaluationRecord) string {
	parts := []string{strings.TrimSuffix(filePrefix, "_"), record.Version}
	if slug := domain.Slugify(record.Endpoint); slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, record.Timestamp)
	return strings.Join(parts, "_")
}

func writeExclusive(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// sortNewestFirst orders by timestamp, then by file name for equal stamps.
func sortNewestFirst(records []domain.EvaluationRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].File > records[j].File
	})
}

var _ ports.EvaluationStore = (*FileStore)(nil)
