// Package japanese classifies runes by writing system and romanizes kana.
package japanese

import (
	"strings"
	"unicode"
)

const (
	prolongedSoundMark = 'ー'
	iterationMark      = '々'
)

// IsKanji reports whether r is an ideograph (including the 々 iteration mark).
func IsKanji(r rune) bool {
	return r == iterationMark || unicode.Is(unicode.Han, r)
}

// IsHiragana reports whether r is hiragana. The prolonged sound mark counts
// as hiragana because textbooks use it inside readings.
func IsHiragana(r rune) bool {
	return r == prolongedSoundMark || unicode.Is(unicode.Hiragana, r)
}

// IsKatakana reports whether r is katakana.
func IsKatakana(r rune) bool {
	return r != prolongedSoundMark && unicode.Is(unicode.Katakana, r)
}

// IsJapanese reports whether r belongs to any Japanese script.
func IsJapanese(r rune) bool {
	return IsKanji(r) || IsHiragana(r) || IsKatakana(r)
}

// IsMeaningLetter reports whether r is a letter of the gloss alphabet:
// Latin letters with any diacritics (English, Vietnamese).
func IsMeaningLetter(r rune) bool {
	return unicode.Is(unicode.Latin, r)
}

// IsMeaningRune reports whether r may appear inside a gloss.
func IsMeaningRune(r rune) bool {
	if IsMeaningLetter(r) || unicode.Is(unicode.Mn, r) || unicode.IsDigit(r) {
		return true
	}
	if r == '　' {
		return false
	}
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(",;.:-'’/()!?\"", r)
}

// ContainsKanji reports whether s contains at least one kanji.
func ContainsKanji(s string) bool { return strings.IndexFunc(s, IsKanji) >= 0 }

// ContainsHiragana reports whether s contains at least one hiragana.
func ContainsHiragana(s string) bool { return strings.IndexFunc(s, IsHiragana) >= 0 }

// ContainsJapanese reports whether s contains any Japanese script.
func ContainsJapanese(s string) bool { return strings.IndexFunc(s, IsJapanese) >= 0 }

// ContainsMeaningLetter reports whether s contains a gloss-alphabet letter.
func ContainsMeaningLetter(s string) bool { return strings.IndexFunc(s, IsMeaningLetter) >= 0 }

// IsDigits reports whether s is non-empty and consists of decimal digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// KatakanaToHiragana shifts katakana in s to the hiragana block.
// Runes without a hiragana counterpart are kept.
func KatakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}
