package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	warnings := Validate([]string{"Token", "secret", "TOKEN", "caf\xc3\xa9"})
	require.Len(t, warnings, 2)

	assert.Equal(t, 2, warnings[0].Index)
	assert.Contains(t, warnings[0].Reason, "duplicate of pattern 1")

	assert.Equal(t, 3, warnings[1].Index)
	assert.Contains(t, warnings[1].Reason, "non-ASCII")
	assert.Contains(t, warnings[1].String(), "pattern 4")
}

func TestValidate_Clean(t *testing.T) {
	assert.Empty(t, Validate([]string{"a", "b"}))
}
