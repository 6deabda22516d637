package rule

import (
	"fmt"

	"github.com/praetorian-inc/linesift/pkg/pattern"
)

// Warning describes a pattern that loads but probably does not do what the
// operator expects.
type Warning struct {
	Index   int
	Pattern string
	Reason  string
}

func (w Warning) String() string {
	return fmt.Sprintf("pattern %d %q: %s", w.Index+1, w.Pattern, w.Reason)
}

// Validate reports duplicate patterns (after case folding) and patterns with
// bytes outside ASCII, which are compared without case folding.
func Validate(patterns []string) []Warning {
	var warnings []Warning
	seen := make(map[string]int)

	for i, p := range patterns {
		key := string(pattern.Lower([]byte(p)))
		if first, ok := seen[key]; ok {
			warnings = append(warnings, Warning{
				Index:   i,
				Pattern: p,
				Reason:  fmt.Sprintf("duplicate of pattern %d", first+1),
			})
			continue
		}
		seen[key] = i

		for j := 0; j < len(p); j++ {
			if p[j] >= 0x80 {
				warnings = append(warnings, Warning{
					Index:   i,
					Pattern: p,
					Reason:  "contains non-ASCII bytes; only ASCII letters match case-insensitively",
				})
				break
			}
		}
	}

	return warnings
}
