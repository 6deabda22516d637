package enum

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/praetorian-inc/linesift/pkg/types"
)

// ListCandidates returns every regular file with the configured extension
// directly inside cfg.Root, in name order. Subdirectories are not entered.
// Symlinks are followed to decide regularity, as a stat of the entry would.
func ListCandidates(cfg Config) ([]Candidate, error) {
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	ignore, err := compileIgnore(cfg)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrDirectoryUnreadable, cfg.Root, err)
	}

	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ext {
			continue
		}

		path := filepath.Join(cfg.Root, name)
		if !isRegular(entry, path) {
			continue
		}

		if ignore != nil && ignore.MatchesPath(name) {
			continue
		}

		candidates = append(candidates, Candidate{Path: path, Name: name})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return candidates, nil
}

func isRegular(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// compileIgnore merges cfg.Exclude with the ignore file, if any.
// It returns nil when there is nothing to exclude.
func compileIgnore(cfg Config) (*gitignore.GitIgnore, error) {
	if cfg.IgnoreFile != "" {
		ignorePath := filepath.Join(cfg.Root, cfg.IgnoreFile)
		if _, err := os.Stat(ignorePath); err == nil {
			ignore, err := gitignore.CompileIgnoreFileAndLines(ignorePath, cfg.Exclude...)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", ignorePath, err)
			}
			return ignore, nil
		}
	}

	if len(cfg.Exclude) == 0 {
		return nil, nil
	}
	return gitignore.CompileIgnoreLines(cfg.Exclude...), nil
}
