package japanese

import "strings"

const sokuon = 'っ'

// monographs maps single hiragana to Hepburn romaji.
var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "wi", 'ゑ': "we", 'を': "wo",
	'ん': "n",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo",
}

// digraphs maps a consonant kana followed by a small ya/yu/yo to its romaji.
// They take precedence over monographs.
var digraphs = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
}

// Transliterate converts hiragana in s to romaji. The two-rune window is tried
// against the digraph table before the single-rune table. A small っ doubles
// the consonant that follows it. Runes outside both tables are copied
// unchanged, so the function is idempotent on romanized text.
func Transliterate(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		if runes[i] == sokuon {
			if next, _ := romanizeAt(runes, i+1); next != "" && isConsonant(next[0]) {
				if strings.HasPrefix(next, "ch") {
					b.WriteByte('t')
				} else {
					b.WriteByte(next[0])
				}
				i++
				continue
			}
			b.WriteRune(runes[i])
			i++
			continue
		}

		if roman, width := romanizeAt(runes, i); width > 0 {
			b.WriteString(roman)
			i += width
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// romanizeAt returns the romaji for the kana starting at i and the number of
// runes consumed, or ("", 0) when runes[i] is not in either table.
func romanizeAt(runes []rune, i int) (string, int) {
	if i >= len(runes) {
		return "", 0
	}
	if i+1 < len(runes) {
		if roman, ok := digraphs[string(runes[i:i+2])]; ok {
			return roman, 2
		}
	}
	if roman, ok := monographs[runes[i]]; ok {
		return roman, 1
	}
	return "", 0
}

func isConsonant(c byte) bool {
	switch c {
	case 'a', 'i', 'u', 'e', 'o', 'n':
		return false
	}
	return c >= 'a' && c <= 'z'
}
