package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current journal schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createRunsTable(db); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}

	if err := createFilesTable(db); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createRunsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			root TEXT NOT NULL,
			rules_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			engine TEXT NOT NULL,
			pattern_count INTEGER NOT NULL,
			files_processed INTEGER NOT NULL,
			files_failed INTEGER NOT NULL,
			total_size INTEGER NOT NULL,
			total_lines INTEGER NOT NULL,
			matched_lines INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		)
	`)
	return err
}

func createFilesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			method TEXT NOT NULL,
			lines_scanned INTEGER NOT NULL,
			lines_matched INTEGER NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, seq)
		)
	`)
	return err
}
