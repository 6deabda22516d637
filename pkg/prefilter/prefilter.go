package prefilter

import (
	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/linesift/pkg/pattern"
)

// Prefilter uses Aho-Corasick to test a line against every pattern in one pass.
// It satisfies pattern.Matcher and answers exactly like pattern.Set.
// A Prefilter keeps a scratch buffer and internal match state, so it must
// not be shared between goroutines.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	keywords []string // lowercased, deduplicated, insertion order
	scratch  []byte
}

// New creates a prefilter from literal patterns. Empty patterns are skipped.
func New(patterns []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		kw := string(pattern.Lower([]byte(p)))
		if !seen[kw] {
			seen[kw] = true
			pf.keywords = append(pf.keywords, kw)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// FromSet builds a prefilter over the patterns already compiled in s.
func FromSet(s *pattern.Set) *Prefilter {
	return New(s.Patterns())
}

// Count returns the number of distinct keywords.
func (pf *Prefilter) Count() int {
	return len(pf.keywords)
}

// Keywords returns the lowercased keywords in insertion order.
func (pf *Prefilter) Keywords() []string {
	return append([]string(nil), pf.keywords...)
}

// MatchesAny reports whether any keyword occurs in line, ignoring ASCII case.
func (pf *Prefilter) MatchesAny(line []byte) bool {
	if pf.matcher == nil || len(line) == 0 {
		return false
	}
	pf.scratch = pattern.LowerInto(pf.scratch, line)
	return len(pf.matcher.Match(pf.scratch)) > 0
}

// Hits returns the indexes (into Keywords) of every keyword found in line.
func (pf *Prefilter) Hits(line []byte) []int {
	if pf.matcher == nil {
		return nil
	}
	pf.scratch = pattern.LowerInto(pf.scratch, line)
	return pf.matcher.Match(pf.scratch)
}
