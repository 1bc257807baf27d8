package vocab

import (
	"testing"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.VocabularyEntry
		want  int
	}{
		{name: "empty", entry: domain.VocabularyEntry{}, want: 0},
		{name: "kanji only", entry: domain.VocabularyEntry{Kanji: "家族"}, want: 1},
		{name: "kanji and reading", entry: domain.VocabularyEntry{Kanji: "家族", Hiragana: "かぞく"}, want: 2},
		{
			name:  "no gloss",
			entry: domain.VocabularyEntry{Kanji: "家族", Hiragana: "かぞく", Pronunciation: "kazoku"},
			want:  3,
		},
		{
			name:  "all fields capped at max",
			entry: domain.VocabularyEntry{Kanji: "家族", Hiragana: "かぞく", Pronunciation: "kazoku", Meaning: "family"},
			want:  domain.MaxQualityScore,
		},
		{
			name:  "reading and gloss",
			entry: domain.VocabularyEntry{Hiragana: "たべもの", Pronunciation: "tabemono", Meaning: "food"},
			want:  4,
		},
		{
			name:  "short gloss earns nothing",
			entry: domain.VocabularyEntry{Kanji: "木", Meaning: "go"},
			want:  1,
		},
		{
			name:  "gloss without latin letters earns nothing",
			entry: domain.VocabularyEntry{Kanji: "木", Meaning: "123"},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(&tt.entry); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.VocabularyEntry
		min   int
		want  bool
	}{
		{
			name:  "complete entry",
			entry: domain.VocabularyEntry{Kanji: "家族", Hiragana: "かぞく", Meaning: "family", QualityScore: 4},
			min:   3,
			want:  true,
		},
		{
			name:  "missing kanji and reading",
			entry: domain.VocabularyEntry{Meaning: "family", QualityScore: 4},
			min:   3,
			want:  false,
		},
		{
			name:  "one-rune gloss",
			entry: domain.VocabularyEntry{Kanji: "家族", Hiragana: "かぞく", Meaning: "f", QualityScore: 4},
			min:   3,
			want:  false,
		},
		{
			name:  "two-rune gloss passes the filter",
			entry: domain.VocabularyEntry{Kanji: "木", Hiragana: "き", Pronunciation: "ki", Meaning: "go", QualityScore: 3},
			min:   3,
			want:  true,
		},
		{
			name:  "gloss without letters",
			entry: domain.VocabularyEntry{Kanji: "家族", Meaning: "---", QualityScore: 4},
			min:   3,
			want:  false,
		},
		{
			name:  "below threshold",
			entry: domain.VocabularyEntry{Kanji: "家族", Meaning: "family", QualityScore: 2},
			min:   3,
			want:  false,
		},
		{
			name:  "lower threshold",
			entry: domain.VocabularyEntry{Kanji: "家族", Meaning: "family", QualityScore: 2},
			min:   2,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accept(&tt.entry, tt.min); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTemplateExample(t *testing.T) {
	e := domain.VocabularyEntry{Kanji: "学校", Hiragana: "がっこう", Pronunciation: "gakkou", Meaning: "school, trường học"}

	tests := []struct {
		index int
		want  string
	}{
		{0, "学校は大切です。(gakkou wa taisetsu desu.) - school là quan trọng."},
		{1, "私は学校が好きです。(Watashi wa gakkou ga suki desu.) - Tôi thích school."},
		{2, "学校について勉強します。(gakkou ni tsuite benkyou shimasu.) - Học về school."},
		{3, "学校は大切です。(gakkou wa taisetsu desu.) - school là quan trọng."},
	}
	for _, tt := range tests {
		if got := TemplateExample(&e, tt.index); got != tt.want {
			t.Errorf("TemplateExample(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestTemplateExample_ReadingOnlyEntry(t *testing.T) {
	e := domain.VocabularyEntry{Hiragana: "たべもの", Meaning: "food"}

	got := TemplateExample(&e, 0)
	want := "たべものは大切です。(たべもの wa taisetsu desu.) - food là quan trọng."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
