package stream

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/praetorian-inc/linesift/pkg/pattern"
	"github.com/praetorian-inc/linesift/pkg/prefilter"
	"github.com/praetorian-inc/linesift/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMethod(t *testing.T) {
	assert.Equal(t, types.MethodSmall, SelectMethod(0))
	assert.Equal(t, types.MethodSmall, SelectMethod(50*1024*1024-1))
	assert.Equal(t, types.MethodLarge, SelectMethod(50*1024*1024))
	assert.Equal(t, types.MethodLarge, SelectMethod(LargeFileThreshold))
	assert.Equal(t, types.MethodLarge, SelectMethod(LargeFileThreshold*4))
}

func TestProfileFor(t *testing.T) {
	small := ProfileFor(types.MethodSmall)
	assert.Equal(t, 8*1024, small.LineCapacity)
	assert.Equal(t, 256*1024, small.OutputCapacity)
	assert.Equal(t, 128*1024, small.FlushThreshold)

	large := ProfileFor(types.MethodLarge)
	assert.Equal(t, 512*1024, large.ReadBuffer)
	assert.Equal(t, 512*1024, large.OutputCapacity)
	assert.Equal(t, 256*1024, large.FlushThreshold)
}

func TestProcess_SteampoweredExample(t *testing.T) {
	input := "Buy on Steampowered.com\nno match here\nSTEAMPOWERED SALE\n"
	var out bytes.Buffer
	c := &types.RunCounters{}

	matched, err := New(pattern.NewSet("steampowered"), SmallProfile).Process(strings.NewReader(input), &out, c)
	require.NoError(t, err)

	assert.Equal(t, int64(2), matched)
	assert.Equal(t, int64(3), c.TotalLines)
	assert.Equal(t, int64(2), c.MatchedLines)
	assert.Equal(t, "Buy on Steampowered.com\nSTEAMPOWERED SALE\n", out.String())
}

func TestProcess_CountersAccumulate(t *testing.T) {
	p := New(pattern.NewSet("x"), SmallProfile)
	c := &types.RunCounters{TotalLines: 10, MatchedLines: 4}

	matched, err := p.Process(strings.NewReader("x\ny\nx\n"), io.Discard, c)
	require.NoError(t, err)

	assert.Equal(t, int64(2), matched)
	assert.Equal(t, int64(13), c.TotalLines)
	assert.Equal(t, int64(6), c.MatchedLines)
}

func TestProcess_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOut     string
		wantLines   int64
		wantMatched int64
	}{
		{"empty input", "", "", 0, 0},
		{"single empty line", "\n", "", 1, 0},
		{"no trailing newline", "abc key", "abc key\n", 1, 1},
		{"blank lines counted", "\n\nKEY\n\n", "KEY\n", 4, 1},
		{"crlf kept", "a KEY\r\nb\r\n", "a KEY\r\n", 2, 1},
		{"pattern longer than line", "ke\nk\n", "", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &types.RunCounters{}
			matched, err := New(pattern.NewSet("key"), SmallProfile).Process(strings.NewReader(tt.input), &out, c)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantLines, c.TotalLines)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestProcess_LongLines(t *testing.T) {
	long := strings.Repeat("a", 100_000) + "NEEDLE" + strings.Repeat("b", 50_000)
	input := "short\n" + long + "\n" + strings.Repeat("c", 70_000) + "\n"

	var out bytes.Buffer
	c := &types.RunCounters{}
	prof := Profile{LineCapacity: 16, ReadBuffer: 16, OutputCapacity: 16, FlushThreshold: 32}

	matched, err := New(pattern.NewSet("needle"), prof).Process(strings.NewReader(input), &out, c)
	require.NoError(t, err)

	assert.Equal(t, int64(1), matched)
	assert.Equal(t, int64(3), c.TotalLines)
	assert.Equal(t, long+"\n", out.String())
}

// countingWriter records how many Write calls it received.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func buildInput(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		switch i % 3 {
		case 0:
			b.WriteString("line with Secret value number ")
		case 1:
			b.WriteString("nothing interesting ")
		default:
			b.WriteString("TOKEN appears here ")
		}
		b.WriteString(strings.Repeat("x", i%17))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestProcess_FlushThresholdTransparency(t *testing.T) {
	input := buildInput(5000)
	set := pattern.NewSet("secret", "token")

	var ref bytes.Buffer
	_, err := New(set, LargeProfile).Process(strings.NewReader(input), &ref, nil)
	require.NoError(t, err)

	for _, threshold := range []int{1, 7, 64, 4096, 128 * 1024} {
		w := &countingWriter{}
		prof := Profile{LineCapacity: 8, ReadBuffer: 32, OutputCapacity: 8, FlushThreshold: threshold}
		_, err := New(set, prof).Process(strings.NewReader(input), w, nil)
		require.NoError(t, err)

		assert.Equal(t, ref.String(), w.String(), "threshold %d", threshold)
		if threshold == 1 {
			assert.Greater(t, w.writes, 1000)
		}
	}
}

func TestProcess_Idempotent(t *testing.T) {
	input := buildInput(2000)
	p := New(pattern.NewSet("secret"), SmallProfile)

	var a, b bytes.Buffer
	_, err := p.Process(strings.NewReader(input), &a, nil)
	require.NoError(t, err)
	_, err = p.Process(strings.NewReader(input), &b, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestProcess_EnginesAgree(t *testing.T) {
	input := buildInput(3000)
	set := pattern.NewSet("secret", "TOKEN", "zzz")

	var viaSet, viaAho bytes.Buffer
	_, err := New(set, SmallProfile).Process(strings.NewReader(input), &viaSet, nil)
	require.NoError(t, err)
	_, err = New(prefilter.FromSet(set), SmallProfile).Process(strings.NewReader(input), &viaAho, nil)
	require.NoError(t, err)

	assert.Equal(t, viaSet.String(), viaAho.String())
}

func TestProcess_NoPatterns(t *testing.T) {
	var out bytes.Buffer
	c := &types.RunCounters{}
	matched, err := New(&pattern.Set{}, SmallProfile).Process(strings.NewReader("a\nb\n"), &out, c)
	require.NoError(t, err)

	assert.Zero(t, matched)
	assert.Equal(t, int64(2), c.TotalLines)
	assert.Empty(t, out.String())
}

// failingReader returns its data and then a non-EOF error.
type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk gone")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestProcess_ReadErrorKeepsMatches(t *testing.T) {
	var out bytes.Buffer
	c := &types.RunCounters{}
	r := &failingReader{data: []byte("key one\nother\nkey two\npartial key")}

	matched, err := New(pattern.NewSet("key"), SmallProfile).Process(r, &out, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")

	assert.Equal(t, int64(2), matched)
	assert.Equal(t, int64(3), c.TotalLines)
	assert.Equal(t, "key one\nkey two\n", out.String())
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, errors.New("no space")
}

func TestProcess_WriteError(t *testing.T) {
	_, err := New(pattern.NewSet("a"), SmallProfile).Process(strings.NewReader("a\n"), errWriter{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("Buy on Steampowered.com\nno match here\nSTEAMPOWERED SALE\n"), 0644))

	var out bytes.Buffer
	c := &types.RunCounters{}
	res := ProcessFile(pattern.NewSet("steampowered"), path, &out, c)

	require.NoError(t, res.Err)
	require.NoError(t, res.StatErr)
	assert.Equal(t, int64(56), res.Size)
	assert.Equal(t, types.MethodSmall, res.Method)
	assert.Equal(t, int64(3), res.LinesScanned)
	assert.Equal(t, int64(2), res.LinesMatched)
	assert.Equal(t, int64(2), c.MatchedLines)
}

func TestProcessFile_OpenFailure(t *testing.T) {
	c := &types.RunCounters{TotalLines: 5}
	res := ProcessFile(pattern.NewSet("x"), filepath.Join(t.TempDir(), "missing.txt"), io.Discard, c)

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, types.ErrFileOpenFailed)
	assert.ErrorIs(t, res.StatErr, types.ErrFileStatFailed)
	assert.False(t, res.SizeKnown())
	assert.Zero(t, res.LinesScanned)
	assert.Equal(t, int64(5), c.TotalLines)
}

func TestProcessPath_LargeMethodFromSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, []byte("Key\n"), 0644))

	var out bytes.Buffer
	res := ProcessPath(pattern.NewSet("key"), path, SmallFileThreshold, &out, nil)

	require.NoError(t, res.Err)
	assert.Equal(t, types.MethodLarge, res.Method)
	assert.Equal(t, "Key\n", out.String())
}
