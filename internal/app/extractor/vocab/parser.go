// Package vocab extracts vocabulary entries from normalized textbook lines.
// Pure function: lines in, domain structs out. No I/O.
package vocab

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// MaxLookahead is the number of following lines searched for an example sentence.
const MaxLookahead = 3

// Candidate is an entry proposed by ParseLine before scoring.
type Candidate struct {
	Kanji         string
	Reading       string
	Meaning       string
	Pronunciation string
	Example       string
	// ExampleOffset is the 1-based position of Example within the lookahead
	// lines, or 0 when no example was found.
	ExampleOffset int
	// Matcher names the pattern that matched, or is empty for a fallback extraction.
	Matcher string
}

type match struct {
	kanji   string
	reading string
	meaning string
}

type matcher struct {
	name string
	fn   func(line string) (match, bool)
}

// matchers are tried in order; the first match wins.
var matchers = []matcher{
	{name: "parenthesized", fn: matchParenthesized},
	{name: "spaced", fn: matchSpaced},
	{name: "reading-only", fn: matchReadingOnly},
}

var pronunciationRe = regexp.MustCompile(`\[([a-zA-Z\s]+)\]`)

// ParseLine extracts a candidate entry from line. lookahead holds the lines
// that follow it; up to MaxLookahead of them are searched for an example.
// When no pattern matches, the first kanji, reading and meaning runs are
// taken independently, and a candidate is still returned if the line holds
// any kanji or hiragana. Lines without either never produce a candidate.
func ParseLine(line string, lookahead []string) (Candidate, bool) {
	var c Candidate
	body := line

	if loc := pronunciationRe.FindStringSubmatchIndex(body); loc != nil {
		c.Pronunciation = strings.Join(strings.Fields(body[loc[2]:loc[3]]), " ")
		body = body[:loc[0]] + " " + body[loc[1]:]
	}
	body = strings.TrimSpace(stripListNumber(strings.TrimSpace(body)))

	m, name, ok := runMatchers(body)
	if !ok {
		m, ok = fallback(body)
		if !ok {
			return Candidate{}, false
		}
	}
	c.Kanji, c.Reading, c.Meaning, c.Matcher = m.kanji, m.reading, m.meaning, name
	c.Example, c.ExampleOffset = findExample(line, lookahead)
	return c, true
}

func runMatchers(line string) (match, string, bool) {
	for _, mt := range matchers {
		if m, ok := mt.fn(line); ok {
			return m, mt.name, true
		}
	}
	return match{}, "", false
}

// kanji (reading) meaning
func matchParenthesized(line string) (match, bool) {
	word, rest := kanjiWord(line)
	if word == "" {
		return match{}, false
	}
	rest, ok := cutPrefixAny(trimSpaceLeft(rest), "(", "（")
	if !ok {
		return match{}, false
	}
	reading, rest := leadingRun(trimSpaceLeft(rest), japanese.IsHiragana)
	if reading == "" {
		return match{}, false
	}
	rest, ok = cutPrefixAny(trimSpaceLeft(rest), ")", "）")
	if !ok {
		return match{}, false
	}
	meaning := meaningRun(rest)
	if meaning == "" {
		return match{}, false
	}
	return match{kanji: word, reading: reading, meaning: meaning}, true
}

// kanji <ws> reading <ws> meaning
func matchSpaced(line string) (match, bool) {
	word, rest := kanjiWord(line)
	if word == "" {
		return match{}, false
	}
	after, ok := requireSpace(rest)
	if !ok {
		return match{}, false
	}
	reading, rest := leadingRun(after, japanese.IsHiragana)
	if reading == "" {
		return match{}, false
	}
	after, ok = requireSpace(rest)
	if !ok {
		return match{}, false
	}
	meaning := meaningRun(after)
	if meaning == "" {
		return match{}, false
	}
	return match{kanji: word, reading: reading, meaning: meaning}, true
}

// reading <ws> meaning
func matchReadingOnly(line string) (match, bool) {
	reading, rest := leadingRun(line, japanese.IsHiragana)
	if strings.Trim(reading, "ー") == "" {
		return match{}, false
	}
	after, ok := requireSpace(rest)
	if !ok {
		return match{}, false
	}
	meaning := meaningRun(after)
	if meaning == "" {
		return match{}, false
	}
	return match{reading: reading, meaning: meaning}, true
}

func fallback(line string) (match, bool) {
	m := match{
		kanji:   firstRun(line, japanese.IsKanji),
		reading: firstRun(line, japanese.IsHiragana),
	}
	if i := strings.IndexFunc(line, japanese.IsMeaningLetter); i >= 0 {
		m.meaning = meaningRun(line[i:])
	}
	return m, m.kanji != "" || m.reading != ""
}

// findExample returns the first lookahead line that contains Japanese,
// is longer than line, and ends a sentence.
func findExample(line string, lookahead []string) (string, int) {
	n := utf8.RuneCountInString(line)
	for i, next := range lookahead {
		if i >= MaxLookahead {
			break
		}
		if japanese.ContainsJapanese(next) &&
			utf8.RuneCountInString(next) > n &&
			strings.ContainsAny(next, "。!?！？") {
			return next, i + 1
		}
	}
	return "", 0
}

// --- scanning helpers ---

// kanjiWord reads a kanji run from the start of s. Hiragana directly after
// the run is kept as okurigana when a space, a parenthesis or the end of
// the line follows it (食べる (たべる)).
func kanjiWord(s string) (string, string) {
	head, rest := leadingRun(s, japanese.IsKanji)
	if head == "" {
		return "", s
	}
	okuri, after := leadingRun(rest, japanese.IsHiragana)
	if okuri == "" {
		return head, rest
	}
	if after == "" {
		return head + okuri, after
	}
	r, _ := utf8.DecodeRuneInString(after)
	if unicode.IsSpace(r) || r == '(' || r == '（' {
		return head + okuri, after
	}
	return head, rest
}

// leadingRun splits s after the longest prefix whose runes satisfy keep.
func leadingRun(s string, keep func(rune) bool) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !keep(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// firstRun returns the first maximal run of runes satisfying keep that is
// not made of prolonged sound marks alone.
func firstRun(s string, keep func(rune) bool) string {
	for s != "" {
		i := strings.IndexFunc(s, keep)
		if i < 0 {
			return ""
		}
		run, rest := leadingRun(s[i:], keep)
		if strings.Trim(run, "ー") != "" {
			return run
		}
		s = rest
	}
	return ""
}

// meaningRun reads the gloss at the start of s: leading separators are
// skipped, then gloss runes are taken until the first Japanese or other
// foreign rune. It returns "" when the run holds no gloss letter.
func meaningRun(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("-–—:=・→", r)
	})
	run, _ := leadingRun(s, japanese.IsMeaningRune)
	run = strings.TrimRightFunc(run, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-/(", r)
	})
	if !japanese.ContainsMeaningLetter(run) {
		return ""
	}
	return run
}

func trimSpaceLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func requireSpace(s string) (string, bool) {
	trimmed := trimSpaceLeft(s)
	return trimmed, len(trimmed) < len(s)
}

func cutPrefixAny(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return s, false
}

// stripListNumber removes a leading "12." or "12)" list marker.
func stripListNumber(s string) string {
	digits, rest := leadingRun(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if digits == "" || rest == "" || (rest[0] != '.' && rest[0] != ')') {
		return s
	}
	return trimSpaceLeft(rest[1:])
}
