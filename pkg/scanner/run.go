package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/linesift/pkg/enum"
	"github.com/praetorian-inc/linesift/pkg/rule"
	"github.com/praetorian-inc/linesift/pkg/store"
	"github.com/praetorian-inc/linesift/pkg/types"
)

// Name is the base name of the default rules and result files.
const Name = "linesift"

// Config describes one batch run over a directory.
type Config struct {
	// Root is the directory to scan. Empty means the current directory.
	Root string

	// RulesPath defaults to <Root>/linesift.rules.
	RulesPath string

	// OutputPath defaults to <Root>/linesift.result.
	OutputPath string

	// Engine selects the matcher, see NewMatcher.
	Engine string

	// Exclude and IgnoreFile are passed to candidate discovery.
	Exclude    []string
	IgnoreFile string

	// Journal records the run when set.
	Journal store.Store

	Reporter Reporter
}

func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.RulesPath == "" {
		c.RulesPath = filepath.Join(c.Root, Name+".rules")
	}
	if c.OutputPath == "" {
		c.OutputPath = filepath.Join(c.Root, Name+".result")
	}
	if c.Reporter == nil {
		c.Reporter = NoopReporter{}
	}
}

// Run loads the rules, discovers candidates and drains them into a freshly
// truncated output file. Errors wrapping types.ErrPatternsUnavailable,
// types.ErrDirectoryUnreadable or types.ErrNoCandidates are returned before
// the output file is touched. Per-file failures are only reported.
func Run(ctx context.Context, cfg Config) (types.RunSummary, error) {
	cfg.applyDefaults()
	rep := cfg.Reporter

	patterns, err := rule.NewLoader(Name).Load(cfg.RulesPath)
	if err != nil {
		return types.RunSummary{}, fmt.Errorf("loading rules: %w", err)
	}
	rep.PatternsLoaded(len(patterns), cfg.RulesPath)
	for _, w := range rule.Validate(patterns) {
		rep.Warnf("%s", w)
	}

	m, err := NewMatcher(cfg.Engine, patterns)
	if err != nil {
		return types.RunSummary{}, err
	}

	candidates, err := enum.ListCandidates(enum.Config{
		Root:       cfg.Root,
		Exclude:    cfg.Exclude,
		IgnoreFile: cfg.IgnoreFile,
	})
	if err != nil {
		return types.RunSummary{}, fmt.Errorf("listing candidates: %w", err)
	}
	candidates = withoutPath(candidates, cfg.OutputPath)
	if len(candidates) == 0 {
		return types.RunSummary{}, fmt.Errorf("%w in %s", types.ErrNoCandidates, cfg.Root)
	}

	lock, err := lockOutput(cfg.OutputPath)
	if err != nil {
		return types.RunSummary{}, err
	}
	defer lock.Unlock()

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return types.RunSummary{}, fmt.Errorf("cannot create %s: %w", cfg.OutputPath, err)
	}

	summary, runErr := NewBatch(m, out, rep).Run(ctx, candidates)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing %s: %w", cfg.OutputPath, err)
	}

	if cfg.Journal != nil {
		meta := store.RunMeta{
			Root:         cfg.Root,
			RulesPath:    cfg.RulesPath,
			OutputPath:   cfg.OutputPath,
			Engine:       engineName(cfg.Engine),
			PatternCount: m.Count(),
		}
		if _, err := cfg.Journal.AddRun(meta, summary); err != nil {
			rep.Warnf("journaling run: %v", err)
		}
	}

	return summary, runErr
}

func engineName(engine string) string {
	if engine == "" {
		return EngineHorspool
	}
	return engine
}

// withoutPath drops the candidate that is the output file itself.
func withoutPath(candidates []enum.Candidate, path string) []enum.Candidate {
	abs, err := filepath.Abs(path)
	if err != nil {
		return candidates
	}
	out := candidates[:0]
	for _, c := range candidates {
		if cAbs, err := filepath.Abs(c.Path); err == nil && cAbs == abs {
			continue
		}
		out = append(out, c)
	}
	return out
}
