package lines

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// maxHeaderKeywordLen bounds lines that qualify as headers by keyword alone.
const maxHeaderKeywordLen = 80

var (
	lessonKeywordRe = regexp.MustCompile(`(?i)(^|[^\p{L}])(lesson|unit|chapter|bài)\s*\d+`)
	lessonKanjiRe   = regexp.MustCompile(`第\s*\d+\s*[課章]`)
	numberedRe      = regexp.MustCompile(`^\d+\.`)

	sectionKeywords = []string{"vocabular", "từ vựng", "grammar", "ngữ pháp", "語彙", "文法"}
)

// IsSectionHeader reports whether line opens a new lesson or section.
// The first matching rule wins:
//   - 第N課, or a lesson, unit, chapter or bài keyword followed by a number;
//   - a "<digits>." prefix;
//   - a short line naming vocabulary or grammar.
//
// On lines containing hiragana only 第N課 and a leading keyword count, so
// word lines such as "1. 家族 かぞく family" or "単位 たんい unit" are left
// to the entry parser. A bare keyword never counts, so glosses like
// "歌 bài hát" stay entries.
func IsSectionHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || japanese.IsDigits(line) {
		return false
	}
	if lessonKanjiRe.MatchString(line) {
		return true
	}
	hasReading := japanese.ContainsHiragana(line)
	if loc := lessonKeywordRe.FindStringIndex(line); loc != nil && (loc[0] == 0 || !hasReading) {
		return true
	}
	if hasReading {
		return false
	}
	if numberedRe.MatchString(line) {
		return true
	}
	if utf8.RuneCountInString(line) < maxHeaderKeywordLen {
		lower := strings.ToLower(line)
		for _, kw := range sectionKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
