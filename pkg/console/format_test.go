package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{999.7, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{12345, "12.3K"},
		{999_999, "1000K"},
		{1_000_000, "1M"},
		{2_500_000, "2.5M"},
		{52_428_800, "52.4M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "input %v", tt.in)
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "3", FormatCount(3))
	assert.Equal(t, "2K", FormatCount(2000))
}
