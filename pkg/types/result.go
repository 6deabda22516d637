package types

import "time"

// FileResult describes one file pass.
//
// Size is -1 when the size lookup failed. StatErr carries that failure while
// the file is still read; Err is set when the pass itself failed.
type FileResult struct {
	Path         string     `json:"path"`
	Size         int64      `json:"size"`
	Method       SizeMethod `json:"method"`
	LinesScanned int64      `json:"lines_scanned"`
	LinesMatched int64      `json:"lines_matched"`
	StatErr      error      `json:"-"`
	Err          error      `json:"-"`
}

// SizeKnown reports whether the size lookup succeeded.
func (r FileResult) SizeKnown() bool {
	return r.Size >= 0
}

// Failed reports whether the pass ended with an error.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// RunSummary is the final report of a batch run.
type RunSummary struct {
	StartedAt      time.Time     `json:"started_at"`
	FilesProcessed int64         `json:"files_processed"`
	FilesFailed    int64         `json:"files_failed"`
	TotalSize      int64         `json:"total_size"`
	TotalLines     int64         `json:"total_lines"`
	MatchedLines   int64         `json:"matched_lines"`
	Elapsed        time.Duration `json:"elapsed"`
	Files          []FileResult  `json:"files,omitempty"`
}

// LinesPerSecond returns the scan throughput, or zero when no measurable
// time has elapsed.
func (s RunSummary) LinesPerSecond() float64 {
	ms := s.Elapsed.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return float64(s.TotalLines) * 1000.0 / float64(ms)
}
