// Package reading resolves kana readings for kanji words that a textbook
// printed without furigana.
package reading

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// IPA feature index holding the katakana reading.
const readingFeature = 7

// Resolver looks readings up in an override dictionary first and falls
// back to morphological analysis with the IPA dictionary.
type Resolver struct {
	t         *tokenizer.Tokenizer
	overrides map[string]string
}

// NewResolver builds the tokenizer. overrides may be nil.
func NewResolver(overrides map[string]string) (*Resolver, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Resolver{t: t, overrides: overrides}, nil
}

// Reading returns the hiragana reading of word. It reports false when any
// token containing kanji has no known reading.
func (r *Resolver) Reading(word string) (string, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", false
	}
	if yomi, ok := r.overrides[word]; ok {
		return yomi, true
	}

	var b strings.Builder
	for _, tok := range r.t.Tokenize(word) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		features := tok.Features()
		switch {
		case len(features) > readingFeature && features[readingFeature] != "*":
			b.WriteString(features[readingFeature])
		case !japanese.ContainsKanji(tok.Surface):
			b.WriteString(tok.Surface)
		default:
			return "", false
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return toHiragana(b.String()), true
}

func toHiragana(s string) string {
	return japanese.KatakanaToHiragana(s)
}
