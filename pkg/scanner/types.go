package scanner

import "github.com/praetorian-inc/linesift/pkg/types"

// Reporter receives the progress of a batch run.
type Reporter interface {
	PatternsLoaded(n int, path string)
	Warnf(format string, args ...any)
	RunStarting(files, patterns int)
	FileStarting(path string, size int64)
	FileDone(res types.FileResult)
	Summary(s types.RunSummary)
}

// NoopReporter discards all progress.
type NoopReporter struct{}

func (NoopReporter) PatternsLoaded(n int, path string)    {}
func (NoopReporter) Warnf(format string, args ...any)     {}
func (NoopReporter) RunStarting(files, patterns int)      {}
func (NoopReporter) FileStarting(path string, size int64) {}
func (NoopReporter) FileDone(res types.FileResult)        {}
func (NoopReporter) Summary(s types.RunSummary)           {}
