package scanner

import (
	"context"
	"io"
	"time"

	"github.com/praetorian-inc/linesift/pkg/enum"
	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/stream"
	"github.com/praetorian-inc/linesift/pkg/types"
)

// Batch drains a list of candidate files into one output sink, sequentially
// and in order. The matcher is only read; the output has a single writer.
type Batch struct {
	Matcher  pattern.Matcher
	Output   io.Writer
	Reporter Reporter

	// Counters accumulates across Run calls when set; otherwise each Run
	// starts from zero.
	Counters *types.RunCounters

	now func() time.Time
}

// NewBatch creates a batch writing matched lines to out.
func NewBatch(m pattern.Matcher, out io.Writer, r Reporter) *Batch {
	if r == nil {
		r = NoopReporter{}
	}
	return &Batch{Matcher: m, Output: out, Reporter: r, now: time.Now}
}

// Run processes every candidate exactly once. A file that cannot be statted
// is still read; a file that cannot be opened or read is reported and the
// run continues. The context is checked between files only; when it is done
// Run stops and returns the summary so far with the context error.
func (b *Batch) Run(ctx context.Context, candidates []enum.Candidate) (types.RunSummary, error) {
	now := b.now
	if now == nil {
		now = time.Now
	}
	reporter := b.Reporter
	if reporter == nil {
		reporter = NoopReporter{}
	}
	counters := b.Counters
	if counters == nil {
		counters = &types.RunCounters{}
	}
	base := counters.Snapshot()

	summary := types.RunSummary{StartedAt: now()}
	reporter.RunStarting(len(candidates), b.Matcher.Count())

	var runErr error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		size, statErr := stream.Stat(c.Path)
		reporter.FileStarting(c.Path, size)

		res := stream.ProcessPath(b.Matcher, c.Path, size, b.Output, counters)
		res.StatErr = statErr
		counters.FilesProcessed++

		if res.SizeKnown() {
			summary.TotalSize += res.Size
		}
		if res.Failed() {
			summary.FilesFailed++
		}
		summary.Files = append(summary.Files, res)
		reporter.FileDone(res)
	}

	summary.FilesProcessed = counters.FilesProcessed - base.FilesProcessed
	summary.TotalLines = counters.TotalLines - base.TotalLines
	summary.MatchedLines = counters.MatchedLines - base.MatchedLines
	summary.Elapsed = now().Sub(summary.StartedAt)

	reporter.Summary(summary)
	return summary, runErr
}
