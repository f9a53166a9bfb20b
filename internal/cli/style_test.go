package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short text", truncate("  short \n text ", 48))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestTruncateKeepsMultiByteRunes(t *testing.T) {
	got := truncate(strings.Repeat("é", 40), 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)

	// 40 runes fit even though they take 80 bytes
	fits := strings.Repeat("ü", 40)
	assert.Equal(t, fits, truncate(fits, 48))
}
