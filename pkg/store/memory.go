package store

import (
	"sync"

	"github.com/praetorian-inc/linesift/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu    sync.RWMutex
	runs  []*RunRecord
	files map[int64][]*FileRecord
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		files: make(map[int64][]*FileRecord),
	}
}

// AddRun records a run and its files.
func (m *MemoryStore) AddRun(meta RunMeta, summary types.RunSummary) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := newRunRecord(meta, summary)
	rec.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, rec)

	for i, f := range summary.Files {
		m.files[rec.ID] = append(m.files[rec.ID], newFileRecord(rec.ID, i, f))
	}
	return rec.ID, nil
}

// GetRuns returns runs newest first.
func (m *MemoryStore) GetRuns(limit int) ([]*RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*RunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		r := *m.runs[i]
		out = append(out, &r)
	}
	return out, nil
}

// GetFiles returns the files of a run.
func (m *MemoryStore) GetFiles(runID int64) ([]*FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*FileRecord
	for _, f := range m.files[runID] {
		c := *f
		out = append(out, &c)
	}
	return out, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
