package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/praetorian-inc/linesift/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddRun records a run and its files in one transaction.
func (s *SQLiteStore) AddRun(meta RunMeta, summary types.RunSummary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rec := newRunRecord(meta, summary)
	res, err := tx.Exec(`
		INSERT INTO runs (started_at, root, rules_path, output_path, engine, pattern_count,
			files_processed, files_failed, total_size, total_lines, matched_lines, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.StartedAt.UnixMilli(),
		rec.Root,
		rec.RulesPath,
		rec.OutputPath,
		rec.Engine,
		rec.PatternCount,
		rec.FilesProcessed,
		rec.FilesFailed,
		rec.TotalSize,
		rec.TotalLines,
		rec.MatchedLines,
		rec.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, f := range summary.Files {
		fr := newFileRecord(runID, i, f)
		var errText *string
		if fr.Error != "" {
			errText = &fr.Error
		}
		_, err := tx.Exec(`
			INSERT INTO files (run_id, seq, path, size, method, lines_scanned, lines_matched, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, fr.RunID, fr.Seq, fr.Path, fr.Size, fr.Method, fr.LinesScanned, fr.LinesMatched, errText)
		if err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// GetRuns returns runs newest first.
func (s *SQLiteStore) GetRuns(limit int) ([]*RunRecord, error) {
	query := `
		SELECT id, started_at, root, rules_path, output_path, engine, pattern_count,
			files_processed, files_failed, total_size, total_lines, matched_lines, elapsed_ms
		FROM runs
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		var r RunRecord
		var startedMs, elapsedMs int64
		err := rows.Scan(
			&r.ID,
			&startedMs,
			&r.Root,
			&r.RulesPath,
			&r.OutputPath,
			&r.Engine,
			&r.PatternCount,
			&r.FilesProcessed,
			&r.FilesFailed,
			&r.TotalSize,
			&r.TotalLines,
			&r.MatchedLines,
			&elapsedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		runs = append(runs, &r)
	}

	return runs, rows.Err()
}

// GetFiles returns the files of a run in processing order.
func (s *SQLiteStore) GetFiles(runID int64) ([]*FileRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, seq, path, size, method, lines_scanned, lines_matched, error
		FROM files
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []*FileRecord
	for rows.Next() {
		var f FileRecord
		var errText sql.NullString
		if err := rows.Scan(&f.RunID, &f.Seq, &f.Path, &f.Size, &f.Method, &f.LinesScanned, &f.LinesMatched, &errText); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Error = errText.String
		files = append(files, &f)
	}

	return files, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
