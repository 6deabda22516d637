package console

import (
	"strconv"
	"strings"
)

// FormatNumber renders n compactly: one decimal with an M suffix from one
// million, with a K suffix from one thousand, and as a plain integer below.
// A trailing ".0" is dropped, so 1500 is "1.5K" and 2000 is "2K".
func FormatNumber(n float64) string {
	var s string
	switch {
	case n >= 1_000_000:
		s = strconv.FormatFloat(n/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		s = strconv.FormatFloat(n/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.Itoa(int(n))
	}
	if strings.HasSuffix(s[:len(s)-1], ".0") {
		s = s[:len(s)-3] + s[len(s)-1:]
	}
	return s
}

// FormatCount is FormatNumber for integer counters.
func FormatCount(n int64) string {
	return FormatNumber(float64(n))
}
