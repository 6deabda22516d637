package rule

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/linesift/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrRulesCreated is returned when the rules file was missing and a default
	// one has been written in its place. The operator must edit it and rerun.
	ErrRulesCreated = fmt.Errorf("%w: rules file created", types.ErrPatternsUnavailable)

	// ErrNoRules is returned when a rules file yields zero usable patterns.
	ErrNoRules = fmt.Errorf("%w: no valid rules", types.ErrPatternsUnavailable)
)

// whitespace trimmed from both ends of every rules line.
const whitespace = " \t\r\n"

// Loader reads pattern rules files.
type Loader struct {
	// Name is used in the header of a newly created default file.
	Name string
	// CreateMissing writes a default rules file when none exists.
	CreateMissing bool
}

// NewLoader creates a loader that creates missing rules files.
func NewLoader(name string) *Loader {
	return &Loader{Name: name, CreateMissing: true}
}

// Load returns the patterns of the rules file at path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as plain
// text with one pattern per line.
func (l *Loader) Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if !l.CreateMissing {
			return nil, fmt.Errorf("%w: %s not found", types.ErrPatternsUnavailable, path)
		}
		if err := WriteDefault(path, l.Name); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrRulesCreated, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open rules file %s: %w", types.ErrPatternsUnavailable, path, err)
	}

	var patterns []string
	if IsYAML(path) {
		patterns, err = ParseYAML(data)
	} else {
		patterns, err = Parse(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", types.ErrPatternsUnavailable, path, err)
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRules, path)
	}
	return patterns, nil
}

// IsYAML reports whether path names a YAML rules file.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Parse reads one pattern per line. Lines are trimmed; empty lines and lines
// starting with '#' are skipped.
func Parse(r io.Reader) ([]string, error) {
	var patterns []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if p, ok := clean(sc.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// ParseYAML reads the patterns list of a YAML rules file.
func ParseYAML(data []byte) ([]string, error) {
	var file yamlRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var patterns []string
	for _, entry := range file.Patterns {
		if p, ok := clean(entry); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}

func clean(line string) (string, bool) {
	line = strings.Trim(line, whitespace)
	if line == "" || line[0] == '#' {
		return "", false
	}
	return line, true
}

// WriteDefault creates a rules file holding a single placeholder pattern and
// explanatory comments. An existing file is left untouched.
func WriteDefault(path, name string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("cannot create rules file %s: %w", path, err)
	}

	if IsYAML(path) {
		enc := yaml.NewEncoder(f)
		err = enc.Encode(yamlRulesFile{Name: name, Patterns: []string{DefaultPattern}})
		if err == nil {
			err = enc.Close()
		}
	} else {
		err = defaultRules.Execute(f, struct{ Name string }{name})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing rules file %s: %w", path, err)
	}
	return nil
}
