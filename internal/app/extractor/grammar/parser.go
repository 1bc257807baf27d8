// Package grammar extracts grammar patterns from normalized textbook lines.
// Pure function: lines in, domain structs out. No I/O.
package grammar

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/n3vocab/internal/japanese"
)

const (
	maxLineLen       = 100
	minExampleLen    = 3
	maxExampleLen    = 50
	minPatternLen    = 2
	maxPatternLenExc = 20
	particles        = "てもでにがをは"
	tildes           = "〜～~"
)

var (
	sectionIndicators = []string{"文法", "ぶん法ぽう", "Grammar"}
	sectionMarkerRe   = regexp.MustCompile(`[〜～~].{1,3}[てもでにがをは]`)
	latinFormulaRe    = regexp.MustCompile(`^[A-Za-z]+\s*\+`)
	headingRe         = regexp.MustCompile(`[A-Z]{2,}`)
	usageMarkers      = []string{"用法", "注意", "Cách dùng", "cách dùng"}
)

// lineKind classifies a line inside an open pattern.
type lineKind int

const (
	kindNotes lineKind = iota
	kindUsage
	kindFormation
	kindExample
	kindMeaning
)

// IsSectionStart reports whether line names a grammar section.
func IsSectionStart(line string) bool {
	for _, ind := range sectionIndicators {
		if strings.Contains(line, ind) {
			return true
		}
	}
	return false
}

// hasPatternMarker reports whether line contains a 〜X particle marker.
func hasPatternMarker(line string) bool {
	return sectionMarkerRe.MatchString(line)
}

// IsPatternStart reports whether line opens a new grammar pattern: it starts
// with a wave dash, or its first token is hiragana ending in a particle, or it
// is a Latin formula such as "V + ても".
func IsPatternStart(line string) bool {
	if line == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	if strings.ContainsRune(tildes, r) {
		return true
	}
	if latinFormulaRe.MatchString(line) {
		return true
	}
	if strings.ContainsRune(line, '。') {
		return false
	}
	tok := firstToken(line)
	last, _ := utf8.DecodeLastRuneInString(tok)
	return utf8.RuneCountInString(tok) >= 2 &&
		strings.IndexFunc(tok, func(r rune) bool { return !japanese.IsHiragana(r) }) < 0 &&
		strings.ContainsRune(particles, last)
}

func isLatinFormula(line string) bool {
	return latinFormulaRe.MatchString(line)
}

// splitPattern separates the pattern token from the rest of the line.
// A leading wave dash is normalized to 〜.
func splitPattern(line string) (pattern, rest string) {
	if isLatinFormula(line) {
		return strings.TrimSpace(line), ""
	}
	tilde := false
	if r, size := utf8.DecodeRuneInString(line); strings.ContainsRune(tildes, r) {
		tilde = true
		line = line[size:]
	}
	tok := firstToken(line)
	rest = strings.TrimLeftFunc(line[len(tok):], func(r rune) bool {
		return unicode.IsSpace(r) || r == ':' || r == '：'
	})
	if tilde {
		tok = "〜" + tok
	}
	return tok, rest
}

// firstToken returns the prefix of s up to whitespace, a colon or another wave dash.
func firstToken(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ':' || r == '：' || strings.ContainsRune(tildes, r)
	})
	if i < 0 {
		return s
	}
	return s[:i]
}

func classify(line string) lineKind {
	for _, m := range usageMarkers {
		if strings.Contains(line, m) {
			return kindUsage
		}
	}
	if strings.ContainsAny(line, "+＋") {
		return kindFormation
	}
	n := utf8.RuneCountInString(line)
	if japanese.ContainsJapanese(line) && n > minExampleLen && n < maxExampleLen {
		return kindExample
	}
	if japanese.ContainsMeaningLetter(line) && !headingRe.MatchString(line) {
		return kindMeaning
	}
	return kindNotes
}

// coreLen is the pattern length without the wave dash.
func coreLen(pattern string) int {
	return utf8.RuneCountInString(strings.TrimPrefix(pattern, "〜"))
}
