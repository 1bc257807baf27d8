package vocab

import (
	"strings"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

var exampleTemplates = []string{
	"{word}は大切です。({reading} wa taisetsu desu.) - {meaning} là quan trọng.",
	"私は{word}が好きです。(Watashi wa {reading} ga suki desu.) - Tôi thích {meaning}.",
	"{word}について勉強します。({reading} ni tsuite benkyou shimasu.) - Học về {meaning}.",
}

// TemplateExample builds a study sentence for an entry without one.
// The template is picked by index so repeated runs produce the same output.
func TemplateExample(e *domain.VocabularyEntry, index int) string {
	reading := e.Pronunciation
	if reading == "" {
		reading = e.Hiragana
	}
	r := strings.NewReplacer(
		"{word}", e.Headword(),
		"{reading}", reading,
		"{meaning}", primaryMeaning(e.Meaning),
	)
	return r.Replace(exampleTemplates[index%len(exampleTemplates)])
}

// primaryMeaning returns the first comma- or semicolon-separated gloss.
func primaryMeaning(meaning string) string {
	if i := strings.IndexAny(meaning, ",;"); i >= 0 {
		meaning = meaning[:i]
	}
	return strings.TrimSpace(meaning)
}
