package store

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/linesift/pkg/types"
)

// Store journals completed batch runs.
// This interface abstracts the underlying storage implementation so the CLI
// can use SQLite on disk and tests can use memory.
type Store interface {
	// AddRun records a run and its per-file results, returning the run ID.
	AddRun(meta RunMeta, summary types.RunSummary) (int64, error)

	// GetRuns returns the most recent runs, newest first. limit <= 0 returns all.
	GetRuns(limit int) ([]*RunRecord, error)

	// GetFiles returns the per-file results of a run in processing order.
	GetFiles(runID int64) ([]*FileRecord, error)

	// Close closes the database connection.
	Close() error
}

// RunMeta describes the inputs of a run.
type RunMeta struct {
	Root         string
	RulesPath    string
	OutputPath   string
	Engine       string
	PatternCount int
}

// RunRecord is a journaled run.
type RunRecord struct {
	ID             int64         `json:"id"`
	StartedAt      time.Time     `json:"started_at"`
	Root           string        `json:"root"`
	RulesPath      string        `json:"rules_path"`
	OutputPath     string        `json:"output_path"`
	Engine         string        `json:"engine"`
	PatternCount   int           `json:"pattern_count"`
	FilesProcessed int64         `json:"files_processed"`
	FilesFailed    int64         `json:"files_failed"`
	TotalSize      int64         `json:"total_size"`
	TotalLines     int64         `json:"total_lines"`
	MatchedLines   int64         `json:"matched_lines"`
	Elapsed        time.Duration `json:"elapsed"`
}

// FileRecord is one journaled file pass.
type FileRecord struct {
	RunID        int64  `json:"run_id"`
	Seq          int    `json:"seq"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Method       string `json:"method"`
	LinesScanned int64  `json:"lines_scanned"`
	LinesMatched int64  `json:"lines_matched"`
	Error        string `json:"error,omitempty"`
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory journal (useful for testing).
	Path string
}

// New creates a Store. ":memory:" returns a MemoryStore, anything else
// a SQLite database at that path.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}

func newRunRecord(meta RunMeta, s types.RunSummary) *RunRecord {
	return &RunRecord{
		StartedAt:      s.StartedAt,
		Root:           meta.Root,
		RulesPath:      meta.RulesPath,
		OutputPath:     meta.OutputPath,
		Engine:         meta.Engine,
		PatternCount:   meta.PatternCount,
		FilesProcessed: s.FilesProcessed,
		FilesFailed:    s.FilesFailed,
		TotalSize:      s.TotalSize,
		TotalLines:     s.TotalLines,
		MatchedLines:   s.MatchedLines,
		Elapsed:        s.Elapsed,
	}
}

func newFileRecord(runID int64, seq int, f types.FileResult) *FileRecord {
	rec := &FileRecord{
		RunID:        runID,
		Seq:          seq,
		Path:         f.Path,
		Size:         f.Size,
		Method:       f.Method.String(),
		LinesScanned: f.LinesScanned,
		LinesMatched: f.LinesMatched,
	}
	if f.Err != nil {
		rec.Error = f.Err.Error()
	}
	return rec
}
