package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/types"
)

// Processor streams newline-delimited input through a Matcher.
type Processor struct {
	Matcher pattern.Matcher
	Profile Profile
}

// New creates a processor with the given matcher and profile.
func New(m pattern.Matcher, p Profile) *Processor {
	return &Processor{Matcher: m, Profile: p}
}

// Process reads r line by line, counts every line in c, and writes each
// matching line followed by '\n' to w. Only the '\n' terminator is stripped;
// a '\r' before it stays part of the line.
//
// It returns the number of lines matched by this call. On a read or write
// error the pass stops, buffered matches are flushed where possible and the
// error is returned together with the count so far.
func (p *Processor) Process(r io.Reader, w io.Writer, c *types.RunCounters) (int64, error) {
	if c == nil {
		c = &types.RunCounters{}
	}
	before := c.MatchedLines

	prof := p.Profile
	if prof.FlushThreshold <= 0 {
		prof = SmallProfile
	}

	var br *bufio.Reader
	if prof.ReadBuffer > 0 {
		br = bufio.NewReaderSize(r, prof.ReadBuffer)
	} else {
		br = bufio.NewReader(r)
	}

	line := make([]byte, 0, prof.LineCapacity)
	out := make([]byte, 0, prof.OutputCapacity)

	flush := func() error {
		if len(out) == 0 {
			return nil
		}
		_, err := w.Write(out)
		out = out[:0]
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	for {
		chunk, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			line = append(line, chunk...)
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			// A partial line at a read failure is dropped.
			if ferr := flush(); ferr != nil {
				return c.MatchedLines - before, errors.Join(fmt.Errorf("reading input: %w", err), ferr)
			}
			return c.MatchedLines - before, fmt.Errorf("reading input: %w", err)
		}

		text := chunk
		if len(line) > 0 {
			line = append(line, chunk...)
			text = line
		}

		if len(text) > 0 {
			if text[len(text)-1] == '\n' {
				text = text[:len(text)-1]
			}
			c.TotalLines++
			if p.Matcher.MatchesAny(text) {
				c.MatchedLines++
				out = append(out, text...)
				out = append(out, '\n')
				if len(out) >= prof.FlushThreshold {
					if ferr := flush(); ferr != nil {
						return c.MatchedLines - before, ferr
					}
				}
			}
		}
		line = line[:0]

		if err != nil {
			break
		}
	}

	return c.MatchedLines - before, flush()
}

// ProcessFile stats, opens and drains a single file into w using the profile
// chosen by its size. A failed size lookup is recorded in StatErr and the file
// is still read with the small profile.
func ProcessFile(m pattern.Matcher, path string, w io.Writer, c *types.RunCounters) types.FileResult {
	size, statErr := Stat(path)
	res := ProcessPath(m, path, size, w, c)
	res.StatErr = statErr
	return res
}

// Stat returns the byte size of path, or -1 and an error wrapping
// types.ErrFileStatFailed.
func Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return -1, fmt.Errorf("%w: %s: %w", types.ErrFileStatFailed, path, err)
	}
	return info.Size(), nil
}

// ProcessPath opens and drains path whose size is already known; size -1
// means unknown and selects the small profile.
func ProcessPath(m pattern.Matcher, path string, size int64, w io.Writer, c *types.RunCounters) types.FileResult {
	method := SelectMethod(max(size, 0))
	res := New(m, ProfileFor(method)).ProcessPath(path, w, c)
	res.Size = size
	res.Method = method
	return res
}

// ProcessPath opens and drains path with the processor's own profile. A failed
// open returns a result with zero lines and Err wrapping
// types.ErrFileOpenFailed, leaving c untouched. Size is left at -1.
func (p *Processor) ProcessPath(path string, w io.Writer, c *types.RunCounters) types.FileResult {
	res := types.FileResult{Path: path, Size: -1}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", types.ErrFileOpenFailed, path, err)
		return res
	}
	defer f.Close()

	if c == nil {
		c = &types.RunCounters{}
	}
	linesBefore := c.TotalLines

	matched, err := p.Process(f, w, c)
	res.LinesMatched = matched
	res.LinesScanned = c.TotalLines - linesBefore
	if err != nil {
		res.Err = fmt.Errorf("processing %s: %w", path, err)
	}
	return res
}
