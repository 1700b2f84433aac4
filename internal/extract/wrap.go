package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
)

// DefaultWrapWidth is the column width extracted document text is filled to.
const DefaultWrapWidth = 120

const tabSize = 8

var lineBreaks = strings.NewReplacer("\n", " ", "\r", " ", "\v", " ", "\f", " ")

// Wrap fills text into lines of at most width columns. Tabs are expanded and
// every other whitespace character becomes one space, so runs of spaces inside
// a line survive. Whitespace is dropped at line ends and at the start of
// continuation lines. Words longer than width are split across lines.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	text = lineBreaks.Replace(expandTabs(text, tabSize))
	wrapped := wordwrap.WrapString(splitLongWords(text, width), uint(width))

	lines := strings.Split(wrapped, "\n")
	out := lines[:0]
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		if i > 0 {
			line = strings.TrimLeft(line, " ")
		}
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// expandTabs replaces tabs with spaces up to the next multiple of size,
// counting columns from the last line break.
func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// splitLongWords cuts space-separated words longer than width into
// width-sized pieces so that no line overflows.
func splitLongWords(s string, width int) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if utf8.RuneCountInString(w) <= width {
			continue
		}
		runes := []rune(w)
		pieces := make([]string, 0, len(runes)/width+1)
		for len(runes) > width {
			pieces = append(pieces, string(runes[:width]))
			runes = runes[width:]
		}
		pieces = append(pieces, string(runes))
		words[i] = strings.Join(pieces, " ")
	}
	return strings.Join(words, " ")
}
