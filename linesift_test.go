package linesift

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/praetorian-inc/linesift/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher_RequiresPatterns(t *testing.T) {
	_, err := NewSearcher()
	assert.ErrorIs(t, err, types.ErrPatternsUnavailable)

	_, err = NewSearcher(WithPatterns("", ""))
	assert.ErrorIs(t, err, types.ErrPatternsUnavailable)
}

func TestNewSearcher_UnknownEngine(t *testing.T) {
	_, err := NewSearcher(WithPatterns("x"), WithEngine("regex"))
	assert.Error(t, err)
}

func TestSearcher_ScanReader(t *testing.T) {
	for _, engine := range []string{"horspool", "aho"} {
		t.Run(engine, func(t *testing.T) {
			s, err := NewSearcher(WithPatterns("steampowered"), WithEngine(engine))
			require.NoError(t, err)
			assert.Equal(t, 1, s.PatternCount())

			var out bytes.Buffer
			input := "Buy on Steampowered.com\nno match here\nSTEAMPOWERED SALE\n"
			res, err := s.ScanReader(strings.NewReader(input), &out)
			require.NoError(t, err)

			assert.Equal(t, "Buy on Steampowered.com\nSTEAMPOWERED SALE\n", out.String())
			assert.Equal(t, int64(3), res.LinesScanned)
			assert.Equal(t, int64(2), res.LinesMatched)
		})
	}
}

func TestSearcher_ScanFileAccumulates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("key\nnope\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("KEY\n"), 0644))

	s, err := NewSearcher(WithPatterns("key"))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = s.ScanFile(a, &out)
	require.NoError(t, err)
	res, err := s.ScanFile(b, &out)
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.Size)
	assert.Equal(t, "key\nKEY\n", out.String())
	assert.Equal(t, RunCounters{TotalLines: 3, MatchedLines: 2, FilesProcessed: 2}, s.Counters())
}

func TestSearcher_ScanFileWithProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("one key\ntwo key\n"), 0644))

	s, err := NewSearcher(WithPatterns("key"), WithProfile(Profile{FlushThreshold: 1}))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := s.ScanFile(path, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.LinesMatched)
	assert.Equal(t, "one key\ntwo key\n", out.String())
}

func TestSearcher_ScanFileMissing(t *testing.T) {
	s, err := NewSearcher(WithPatterns("key"))
	require.NoError(t, err)

	res, err := s.ScanFile(filepath.Join(t.TempDir(), "missing.txt"), &bytes.Buffer{})
	assert.ErrorIs(t, err, types.ErrFileOpenFailed)
	assert.Zero(t, res.LinesScanned)
}

func TestLoadPatternsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "linesift.rules")
	require.NoError(t, os.WriteFile(path, []byte("# c\nalpha\n"), 0644))

	patterns, err := LoadPatternsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, patterns)

	_, err = LoadPatternsFromFile(filepath.Join(dir, "missing.rules"))
	assert.ErrorIs(t, err, types.ErrPatternsUnavailable)
	_, statErr := os.Stat(filepath.Join(dir, "missing.rules"))
	assert.True(t, os.IsNotExist(statErr))
}
