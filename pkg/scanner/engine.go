package scanner

import (
	"fmt"

	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/prefilter"
)

// Engine names accepted by NewMatcher.
const (
	EngineHorspool    = "horspool"
	EngineAhoCorasick = "aho"
)

// NewMatcher compiles patterns with the named engine. An empty name selects
// the Horspool engine.
func NewMatcher(engine string, patterns []string) (pattern.Matcher, error) {
	switch engine {
	case "", EngineHorspool:
		return pattern.NewSet(patterns...), nil
	case EngineAhoCorasick:
		return prefilter.New(patterns), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %s or %s)", engine, EngineHorspool, EngineAhoCorasick)
	}
}
