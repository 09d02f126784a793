package evaluations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// SQLiteIndex mirrors evaluation records in a SQLite database.
// When the database cannot be opened it degrades to scanning the file store.
type SQLiteIndex struct {
	db       *sql.DB
	path     string
	mu       sync.Mutex
	fallback *FileStore
}

// NewSQLiteIndex creates (or opens) the index database at path.
func NewSQLiteIndex(path string, fallback *FileStore) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return &SQLiteIndex{path: path, fallback: fallback}, fmt.Errorf("create index dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteIndex{path: path, fallback: fallback}, fmt.Errorf("open index: %w", err)
	}
	index := &SQLiteIndex{db: db, path: path, fallback: fallback}
	if err := index.init(); err != nil {
		_ = db.Close()
		return &SQLiteIndex{path: path, fallback: fallback}, fmt.Errorf("init index: %w", err)
	}
	return index, nil
}

func (s *SQLiteIndex) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		endpoint TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL,
		completeness INTEGER,
		clarity INTEGER,
		accuracy INTEGER,
		relevance INTEGER,
		tone INTEGER,
		overall INTEGER,
		raw_response TEXT,
		file TEXT
	);`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS evaluations_version ON evaluations(version, timestamp);`)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteIndex) Path() string {
	return s.path
}

// Degraded reports whether the index fell back to scanning files.
func (s *SQLiteIndex) Degraded() bool {
	return s.db == nil
}

// Record inserts or replaces a record.
func (s *SQLiteIndex) Record(ctx context.Context, record domain.EvaluationRecord) error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := record.Scores
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO evaluations
		(id, version, endpoint, timestamp, completeness, clarity, accuracy, relevance, tone, overall, raw_response, file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Version,
		record.Endpoint,
		record.Timestamp,
		nullable(sc.Completeness),
		nullable(sc.Clarity),
		nullable(sc.Accuracy),
		nullable(sc.Relevance),
		nullable(sc.Tone),
		nullable(sc.Overall),
		record.RawResponse,
		record.File,
	)
	return err
}

// List returns index entries, newest first.
func (s *SQLiteIndex) List(ctx context.Context, limit int) ([]domain.EvaluationRecord, error) {
	if s.db == nil {
		if s.fallback == nil {
			return nil, nil
		}
		return s.fallback.Records(limit)
	}
	builder := strings.Builder{}
	builder.WriteString(`SELECT id, version, endpoint, timestamp, completeness, clarity, accuracy, relevance, tone, overall, raw_response, file
		FROM evaluations ORDER BY timestamp DESC, file DESC`)
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.EvaluationRecord
	for rows.Next() {
		var rec domain.EvaluationRecord
		var completeness, clarity, accuracy, relevance, tone, overall sql.NullInt64
		var raw, file sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Version, &rec.Endpoint, &rec.Timestamp,
			&completeness, &clarity, &accuracy, &relevance, &tone, &overall, &raw, &file); err != nil {
			return nil, err
		}
		rec.Scores = domain.EvaluationScore{
			Version:      rec.Version,
			Completeness: intFromNull(completeness),
			Clarity:      intFromNull(clarity),
			Accuracy:     intFromNull(accuracy),
			Relevance:    intFromNull(relevance),
			Tone:         intFromNull(tone),
			Overall:      intFromNull(overall),
		}
		rec.RawResponse = raw.String
		rec.File = file.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summaries aggregates Overall per version. An empty versions slice selects all.
func (s *SQLiteIndex) Summaries(ctx context.Context, versions []string) ([]domain.VersionSummary, error) {
	if s.db == nil {
		return s.fallbackSummaries(versions)
	}
	query := `SELECT version, COUNT(*), COALESCE(SUM(overall), 0), COALESCE(AVG(overall), 0.0), MAX(timestamp)
		FROM evaluations`
	var args []interface{}
	if len(versions) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(versions)), ",")
		query += " WHERE version IN (" + placeholders + ")"
		for _, v := range versions {
			args = append(args, v)
		}
	}
	query += " GROUP BY version ORDER BY version"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.VersionSummary
	for rows.Next() {
		var summary domain.VersionSummary
		if err := rows.Scan(&summary.Version, &summary.Runs, &summary.TotalOverall, &summary.AverageOverall, &summary.LatestAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *SQLiteIndex) fallbackSummaries(versions []string) ([]domain.VersionSummary, error) {
	if s.fallback == nil {
		return nil, nil
	}
	records, err := s.fallback.Records(0)
	if err != nil {
		return nil, err
	}
	return Summarize(records, versions), nil
}

// Close releases the database handle.
func (s *SQLiteIndex) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullable(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return domain.IntPtr(int(v.Int64))
}

var _ ports.EvaluationIndex = (*SQLiteIndex)(nil)
