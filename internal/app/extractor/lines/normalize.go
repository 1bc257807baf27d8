// Package lines turns extracted page text into classified lines.
// Pure functions: text in, lines out. No I/O.
package lines

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// PageSeparator separates pages in extracted text.
const PageSeparator = '\f'

// RawLine is a trimmed, non-empty line with its origin in the source.
type RawLine struct {
	Text string
	Page int // 1-based
	Line int // 1-based, counted within the page before empty lines are dropped
}

// Normalize splits text into pages and lines, composes and width-folds each
// line (full-width ASCII and the ideographic space become their narrow forms),
// trims whitespace, and drops empty lines.
func Normalize(text string) []RawLine {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []RawLine
	for p, page := range strings.Split(text, string(PageSeparator)) {
		for l, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(foldLine(line))
			if line == "" {
				continue
			}
			out = append(out, RawLine{Text: line, Page: p + 1, Line: l + 1})
		}
	}
	return out
}

// Texts returns the text of each line.
func Texts(raw []RawLine) []string {
	out := make([]string, len(raw))
	for i := range raw {
		out[i] = raw[i].Text
	}
	return out
}

func foldLine(s string) string {
	return width.Fold.String(norm.NFC.String(s))
}
