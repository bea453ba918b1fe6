package engine

import "regexp"

// ansiPattern matches the terminal control sequences this stripper
// removes unconditionally before any rule ever sees the input: CSI
// sequences (cursor movement, SGR color codes, ...), OSC sequences
// (window title, hyperlinks, ...) terminated by BEL or ST, and the
// remaining single-character escape sequences (ESC followed by one byte
// in the C1-equivalent range).
var ansiPattern = regexp.MustCompile(
	"\x1b\\[[0-9:;<=>?]*[ -/]*[@-~]" + // CSI
		"|\x1b\\][^\x07\x1b]*(?:\x07|\x1b\\\\)" + // OSC ... BEL or ST
		"|\x1b[@-Z\\\\^-_]", // single-char escapes
)

// StripANSI removes terminal control sequences from input. It is the
// canonical pre-processing step (spec §4.4): every downstream offset in a
// RedactionMatch refers to this stripped form, never the original bytes.
func StripANSI(input []byte) []byte {
	return ansiPattern.ReplaceAll(input, nil)
}

// StripANSIString is the string convenience form of StripANSI.
func StripANSIString(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}
