// Package pattern holds the compiled literal patterns and the case-insensitive
// Horspool search used to test each scanned line.
package pattern

// Matcher reports whether any of its patterns occurs in a line.
// Implementations are read-only once built.
type Matcher interface {
	MatchesAny(line []byte) bool
	Count() int
}

// lowerTable maps every byte to its ASCII lowercase form.
var lowerTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		b := byte(i)
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		t[i] = b
	}
	return t
}()

// LowerByte folds a single ASCII letter; all other bytes are returned as-is.
func LowerByte(b byte) byte {
	return lowerTable[b]
}

// Lower returns an ASCII-lowercased copy of p.
func Lower(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = lowerTable[b]
	}
	return out
}

// LowerInto lowers src into dst, growing dst as needed, and returns it.
func LowerInto(dst, src []byte) []byte {
	dst = dst[:0]
	for _, b := range src {
		dst = append(dst, lowerTable[b])
	}
	return dst
}
