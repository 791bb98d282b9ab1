package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
)

// InMemory opens a throwaway database.
const InMemory = ":memory:"

// SQLiteStore implements ReportStore using SQLite for persistence.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) history.db inside basePath.
// basePath may be ":memory:".
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == InMemory {
		dbPath = InMemory
	} else {
		dbPath = filepath.Join(basePath, "history.db")

		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create memory directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each :memory: connection is a separate database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, now: time.Now}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		repo TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		project_type TEXT NOT NULL,
		score INTEGER NOT NULL,
		grade TEXT NOT NULL,
		partial INTEGER NOT NULL DEFAULT 0,
		report TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_repo ON reports(repo);
	CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores report under a fresh random id.
func (s *SQLiteStore) Save(report *analyzer.AnalysisReport) (*Record, error) {
	if report == nil {
		return nil, fmt.Errorf("save report: nil report")
	}
	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	rec := &Record{
		ID:          uuid.NewString(),
		Repo:        report.Repo,
		Fingerprint: report.Fingerprint,
		ProjectType: report.ProjectType,
		Score:       report.Quality.Score,
		Grade:       report.Quality.Grade,
		Partial:     report.IsPartial(),
		CreatedAt:   s.now().UTC(),
		Report:      report,
	}

	_, err = s.db.Exec(`
		INSERT INTO reports (id, repo, fingerprint, project_type, score, grade, partial, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Repo, rec.Fingerprint, string(rec.ProjectType), rec.Score, string(rec.Grade),
		rec.Partial, string(body), rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return rec, nil
}

// Get returns the record with its full report.
func (s *SQLiteStore) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, repo, fingerprint, project_type, score, grade, partial, created_at, report
		FROM reports WHERE id = ?
	`, id)

	var body string
	rec, err := scanRecord(row, &body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var report analyzer.AnalysisReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	rec.Report = &report
	return rec, nil
}

// List returns summaries newest first, optionally filtered by repo.
// Report bodies are not loaded.
func (s *SQLiteStore) List(repo string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows *sql.Rows
	var err error
	if repo != "" {
		rows, err = s.db.Query(`
			SELECT id, repo, fingerprint, project_type, score, grade, partial, created_at
			FROM reports WHERE repo = ? ORDER BY created_at DESC, rowid DESC LIMIT ?
		`, repo, limit)
	} else {
		rows, err = s.db.Query(`
			SELECT id, repo, fingerprint, project_type, score, grade, partial, created_at
			FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, *rec)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return records, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads the summary columns, plus the report body when body is non-nil.
func scanRecord(sc scanner, body *string) (*Record, error) {
	var rec Record
	var projectType, grade, createdAt string

	dest := []any{&rec.ID, &rec.Repo, &rec.Fingerprint, &projectType, &rec.Score, &grade, &rec.Partial, &createdAt}
	if body != nil {
		dest = append(dest, body)
	}
	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}

	rec.ProjectType = analyzer.ProjectType(projectType)
	rec.Grade = analyzer.Grade(grade)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
