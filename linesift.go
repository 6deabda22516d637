// Package linesift filters text files down to the lines that contain any of a
// set of literal, case-insensitive patterns.
//
// # Basic Usage
//
// Create a searcher and stream a reader through it:
//
//	s, err := linesift.NewSearcher(linesift.WithPatterns("steampowered", "api_key"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.ScanReader(os.Stdin, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Fprintf(os.Stderr, "%d of %d lines matched\n", res.LinesMatched, res.LinesScanned)
//
// # Whole Directories
//
// The scanner package runs the full batch over a directory: it reads the rules
// file, collects the .txt files and writes every matched line to one result file.
package linesift

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/rule"
	"github.com/praetorian-inc/linesift/pkg/scanner"
	"github.com/praetorian-inc/linesift/pkg/stream"
	"github.com/praetorian-inc/linesift/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// FileResult describes one scanned input.
	FileResult = types.FileResult

	// RunCounters accumulates totals across inputs.
	RunCounters = types.RunCounters

	// Profile sizes the streaming buffers.
	Profile = stream.Profile
)

// Searcher streams inputs through a compiled pattern set.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	matcher  pattern.Matcher
	config   *searcherConfig
	counters types.RunCounters
}

type searcherConfig struct {
	patterns []string
	engine   string
	profile  *stream.Profile
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithPatterns adds literal patterns. Empty patterns are ignored.
func WithPatterns(patterns ...string) Option {
	return func(c *searcherConfig) {
		c.patterns = append(c.patterns, patterns...)
	}
}

// WithEngine selects the matching engine: "horspool" (default) or "aho".
func WithEngine(engine string) Option {
	return func(c *searcherConfig) {
		c.engine = engine
	}
}

// WithProfile fixes the buffer profile. By default ScanReader uses the small
// profile and ScanFile picks one from the file size.
func WithProfile(p Profile) Option {
	return func(c *searcherConfig) {
		c.profile = &p
	}
}

// NewSearcher creates a Searcher. At least one non-empty pattern is required.
func NewSearcher(opts ...Option) (*Searcher, error) {
	config := &searcherConfig{}
	for _, opt := range opts {
		opt(config)
	}

	m, err := scanner.NewMatcher(config.engine, config.patterns)
	if err != nil {
		return nil, fmt.Errorf("creating matcher: %w", err)
	}
	if m.Count() == 0 {
		return nil, fmt.Errorf("%w: no patterns given", types.ErrPatternsUnavailable)
	}

	return &Searcher{matcher: m, config: config}, nil
}

// ScanReader writes every line of r containing a pattern to w.
func (s *Searcher) ScanReader(r io.Reader, w io.Writer) (FileResult, error) {
	prof := stream.SmallProfile
	if s.config.profile != nil {
		prof = *s.config.profile
	}

	before := s.counters.TotalLines
	matched, err := stream.New(s.matcher, prof).Process(r, w, &s.counters)
	s.counters.FilesProcessed++

	return FileResult{
		Size:         -1,
		LinesScanned: s.counters.TotalLines - before,
		LinesMatched: matched,
		Err:          err,
	}, err
}

// ScanFile streams the file at path into w, choosing buffers by file size.
func (s *Searcher) ScanFile(path string, w io.Writer) (FileResult, error) {
	var res FileResult
	if s.config.profile != nil {
		res = s.scanFileWithProfile(path, w)
	} else {
		res = stream.ProcessFile(s.matcher, path, w, &s.counters)
	}
	s.counters.FilesProcessed++
	return res, res.Err
}

func (s *Searcher) scanFileWithProfile(path string, w io.Writer) FileResult {
	size, statErr := stream.Stat(path)
	res := stream.New(s.matcher, *s.config.profile).ProcessPath(path, w, &s.counters)
	res.Size = size
	res.Method = stream.SelectMethod(max(size, 0))
	res.StatErr = statErr
	return res
}

// Counters returns the totals accumulated by this searcher.
func (s *Searcher) Counters() RunCounters {
	return s.counters.Snapshot()
}

// PatternCount returns the number of compiled patterns.
func (s *Searcher) PatternCount() int {
	return s.matcher.Count()
}

// LoadPatternsFromFile reads a rules file without creating it when missing.
//
// Example:
//
//	patterns, err := linesift.LoadPatternsFromFile("linesift.rules")
//	if err != nil {
//	    return err
//	}
//	s, err := linesift.NewSearcher(linesift.WithPatterns(patterns...))
func LoadPatternsFromFile(path string) ([]string, error) {
	l := &rule.Loader{Name: scanner.Name}
	return l.Load(path)
}
