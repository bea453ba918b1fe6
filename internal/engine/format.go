package engine

import "golang.org/x/text/width"

// TruncateDisplay truncates s to at most maxWidth terminal display
// columns, counting East-Asian wide/fullwidth runes as two columns so a
// console summary table stays aligned regardless of the captured
// sample's script. It appends an ellipsis when truncation occurs.
// stdlib unicode/utf8 is enough everywhere byte offsets matter in the
// pipeline; this is purely a cosmetic concern for the sample preview
// column, hence the one place golang.org/x/text earns its keep.
func TruncateDisplay(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(s)
	col := 0
	cut := -1 // rune count that still leaves one column for the ellipsis
	for i, r := range runes {
		w := runeWidth(r)
		if cut < 0 && col+w > maxWidth-1 {
			cut = i
		}
		if col+w > maxWidth {
			return string(runes[:cut]) + "…"
		}
		col += w
	}
	return s
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
