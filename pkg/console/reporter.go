// Package console writes human-readable progress and summaries of a batch run.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/praetorian-inc/linesift/pkg/types"
)

// Level filters what a Reporter prints.
type Level int

const (
	// LevelError prints errors only.
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// ColorMode selects when output is coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// styles holds the colour formatters of the reporter.
type styles struct {
	heading *color.Color
	name    *color.Color
	ok      *color.Color
	miss    *color.Color
	warn    *color.Color
	err     *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		name:    color.New(color.FgHiWhite),
		ok:      color.New(color.FgGreen),
		miss:    color.New(color.FgHiBlack),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{s.heading, s.name, s.ok, s.miss, s.warn, s.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Reporter prints diagnostics for a run. It is not safe for concurrent use;
// the run is sequential and owns it.
type Reporter struct {
	w     io.Writer
	level Level
	s     *styles
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, level Level, mode ColorMode) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w, level: level, s: newStyles(useColor(w, mode))}
}

// useColor resolves a colour mode against the writer, honouring NO_COLOR.
func useColor(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Reporter) printf(l Level, format string, args ...any) {
	if l > r.level {
		return
	}
	fmt.Fprintf(r.w, format, args...)
}

// Infof prints an informational line.
func (r *Reporter) Infof(format string, args ...any) {
	r.printf(LevelInfo, format+"\n", args...)
}

// Debugf prints a line only in verbose mode.
func (r *Reporter) Debugf(format string, args ...any) {
	r.printf(LevelDebug, "%s\n", r.s.miss.Sprintf(format, args...))
}

// Warnf prints a warning.
func (r *Reporter) Warnf(format string, args ...any) {
	r.printf(LevelInfo, "%s%s\n", r.s.warn.Sprint("Warning: "), fmt.Sprintf(format, args...))
}

// Errorf prints an error. Errors are shown at every level.
func (r *Reporter) Errorf(format string, args ...any) {
	r.printf(LevelError, "%s%s\n", r.s.err.Sprint("Error: "), fmt.Sprintf(format, args...))
}

// PatternsLoaded reports how many patterns came from the rules file.
func (r *Reporter) PatternsLoaded(n int, path string) {
	r.Infof("Loaded %d patterns from %s", n, path)
}

// RunStarting reports the number of candidates and patterns.
func (r *Reporter) RunStarting(files, patterns int) {
	r.Infof("Found %d .txt files to process", files)
	r.Infof("Processing with %d patterns\n", patterns)
}

// FileStarting prints the start of a progress line. The line is completed
// by FileDone.
func (r *Reporter) FileStarting(path string, size int64) {
	sizeStr := "unknown size"
	if size >= 0 {
		sizeStr = FormatCount(size)
	}
	r.printf(LevelInfo, "Processing: %s (%s) ... ", r.s.name.Sprint(filepath.Base(path)), sizeStr)
}

// FileDone completes the progress line of res.
func (r *Reporter) FileDone(res types.FileResult) {
	switch {
	case res.Failed():
		r.printf(LevelInfo, "%s\n", r.s.err.Sprint("✗ failed"))
		r.Errorf("%v", res.Err)
	case res.LinesMatched > 0:
		r.printf(LevelInfo, "%s\n", r.s.ok.Sprintf("✓ %s matches", FormatCount(res.LinesMatched)))
	default:
		r.printf(LevelInfo, "%s\n", r.s.miss.Sprint("✗ no matches"))
	}
	if res.StatErr != nil {
		r.Debugf("  %v", res.StatErr)
	}
	r.Debugf("  method=%s lines=%d matched=%d", res.Method, res.LinesScanned, res.LinesMatched)
}

// Summary prints the final statistics block.
func (r *Reporter) Summary(s types.RunSummary) {
	r.printf(LevelInfo, "\n%s\n", r.s.heading.Sprint("=== BATCH PROCESSING COMPLETE ==="))
	r.Infof("Files processed: %s", FormatCount(s.FilesProcessed))
	if s.FilesFailed > 0 {
		r.Infof("Files failed: %s", FormatCount(s.FilesFailed))
	}
	r.Infof("Total size: %s", FormatCount(s.TotalSize))
	r.Infof("Total lines scanned: %s", FormatCount(s.TotalLines))
	r.Infof("Total matched lines: %s", FormatCount(s.MatchedLines))
	r.Infof("Processing time: %d ms", s.Elapsed.Milliseconds())
	if s.Elapsed.Milliseconds() > 0 {
		r.Infof("Lines per second: %s", FormatNumber(s.LinesPerSecond()))
	}
}
