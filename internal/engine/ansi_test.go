package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI_RemovesCSISequences(t *testing.T) {
	input := []byte("\x1b[31mred\x1b[0m plain")
	assert.Equal(t, "red plain", string(StripANSI(input)))
}

func TestStripANSI_RemovesOSCSequences(t *testing.T) {
	input := []byte("\x1b]0;window title\x07rest")
	assert.Equal(t, "rest", string(StripANSI(input)))
}

func TestStripANSI_NoEscapesUnchanged(t *testing.T) {
	input := []byte("plain text, no escapes here")
	assert.Equal(t, string(input), string(StripANSI(input)))
}

func TestStripANSIString_MatchesByteVariant(t *testing.T) {
	input := "\x1b[1;32mgreen\x1b[0m"
	assert.Equal(t, string(StripANSI([]byte(input))), StripANSIString(input))
}
