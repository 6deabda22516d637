package pattern

// compiled is one lowercased pattern and its Horspool shift table.
type compiled struct {
	text []byte
	skip [256]int
}

func compile(p []byte) compiled {
	c := compiled{text: Lower(p)}
	m := len(c.text)
	for i := range c.skip {
		c.skip[i] = m
	}
	// The last byte is excluded so a full-alignment match never shifts by zero.
	for i := 0; i < m-1; i++ {
		c.skip[c.text[i]] = m - 1 - i
	}
	return c
}

// find reports whether c occurs in text, comparing case-insensitively.
func (c *compiled) find(text []byte) bool {
	n, m := len(text), len(c.text)
	if n < m {
		return false
	}

	for i := m - 1; i < n; {
		j, k := m-1, i
		for j >= 0 && lowerTable[text[k]] == c.text[j] {
			j--
			k--
		}
		if j < 0 {
			return true
		}
		i += c.skip[lowerTable[text[i]]]
	}
	return false
}

// Set is an ordered collection of literal patterns combined with OR.
// A Set must not be modified while another goroutine calls MatchesAny.
type Set struct {
	patterns []compiled
}

// NewSet creates a set holding the given patterns. Empty patterns are skipped.
func NewSet(patterns ...string) *Set {
	s := &Set{}
	for _, p := range patterns {
		s.AddString(p)
	}
	return s
}

// Add lowercases p and stores it with its skip table. Empty patterns are ignored.
func (s *Set) Add(p []byte) {
	if len(p) == 0 {
		return
	}
	s.patterns = append(s.patterns, compile(p))
}

// AddString is Add for string patterns.
func (s *Set) AddString(p string) {
	s.Add([]byte(p))
}

// Clear removes every pattern.
func (s *Set) Clear() {
	s.patterns = nil
}

// Count returns the number of stored patterns.
func (s *Set) Count() int {
	return len(s.patterns)
}

// Patterns returns the lowercased patterns in insertion order.
func (s *Set) Patterns() []string {
	out := make([]string, len(s.patterns))
	for i := range s.patterns {
		out[i] = string(s.patterns[i].text)
	}
	return out
}

// SkipTable returns a copy of the shift table of the i-th pattern.
func (s *Set) SkipTable(i int) [256]int {
	return s.patterns[i].skip
}

// MatchesAny reports whether at least one pattern occurs in line.
// Patterns are tried in insertion order and the first hit wins.
func (s *Set) MatchesAny(line []byte) bool {
	for i := range s.patterns {
		if s.patterns[i].find(line) {
			return true
		}
	}
	return false
}
