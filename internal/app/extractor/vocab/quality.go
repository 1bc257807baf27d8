package vocab

import (
	"unicode/utf8"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// DefaultMinQuality is the lowest score an accepted entry may have.
const DefaultMinQuality = 3

// Score rates how complete an entry is: one point each for kanji, reading
// and pronunciation, two for a gloss longer than two runes. The result is
// capped at domain.MaxQualityScore.
func Score(e *domain.VocabularyEntry) int {
	score := 0
	if e.Kanji != "" {
		score++
	}
	if e.Hiragana != "" {
		score++
	}
	if e.Pronunciation != "" {
		score++
	}
	if usableMeaning(e.Meaning, 2) {
		score += 2
	}
	return min(score, domain.MaxQualityScore)
}

// Accept reports whether an entry is kept: it needs kanji or a reading,
// a gloss longer than one rune, and a score of at least minQuality.
func Accept(e *domain.VocabularyEntry, minQuality int) bool {
	if !e.HasKanji() && !e.HasReading() {
		return false
	}
	if !usableMeaning(e.Meaning, 1) {
		return false
	}
	return e.QualityScore >= minQuality
}

func usableMeaning(meaning string, minLen int) bool {
	return utf8.RuneCountInString(meaning) > minLen && japanese.ContainsMeaningLetter(meaning)
}
