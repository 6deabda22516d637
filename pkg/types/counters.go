package types

// RunCounters accumulates line and file totals across a batch run.
// Counters only ever grow; a run owns one instance and passes it by pointer
// into every file pass.
type RunCounters struct {
	TotalLines     int64 `json:"total_lines"`
	MatchedLines   int64 `json:"matched_lines"`
	FilesProcessed int64 `json:"files_processed"`
}

// Snapshot returns a copy of the current totals.
func (c *RunCounters) Snapshot() RunCounters {
	return *c
}
