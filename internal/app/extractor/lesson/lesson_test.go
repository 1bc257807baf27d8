package lesson

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

func makeEntries(n int) []domain.VocabularyEntry {
	out := make([]domain.VocabularyEntry, n)
	for i := range out {
		out[i] = domain.VocabularyEntry{
			Kanji:        fmt.Sprintf("語%d", i),
			Meaning:      fmt.Sprintf("word %d", i),
			QualityScore: 3 + i%2,
		}
	}
	return out
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{"exact multiple", 60, 30, []int{30, 30}},
		{"short tail", 65, 30, []int{30, 30, 5}},
		{"single short batch", 4, 5, []int{4}},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"empty", 0, 30, nil},
		{"non-positive size", 7, 0, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			batches := Chunk(items, tt.size)

			var sizes []int
			var joined []int
			for _, b := range batches {
				sizes = append(sizes, len(b))
				joined = append(joined, b...)
			}
			assert.Equal(t, tt.sizes, sizes)
			if tt.n > 0 {
				assert.Equal(t, items, joined, "concatenated batches must reproduce the input")
			}
		})
	}
}

func TestVocabulary_SixtyFiveEntries(t *testing.T) {
	entries := makeEntries(65)

	lessons := Vocabulary(entries, DefaultVocabularySize)

	require.Len(t, lessons, 3)
	counts := []int{lessons[0].VocabularyCount, lessons[1].VocabularyCount, lessons[2].VocabularyCount}
	assert.Equal(t, []int{30, 30, 5}, counts)

	total := 0
	for _, l := range lessons {
		assert.Len(t, l.Vocabulary, l.VocabularyCount)
		total += l.VocabularyCount
	}
	assert.Equal(t, 65, total)

	assert.Equal(t, "lesson-001", lessons[0].ID)
	assert.Equal(t, "lesson-003", lessons[2].ID)
	assert.Equal(t, "Bài 2: Từ vựng N3", lessons[1].Title)
	assert.Equal(t, "Học 5 từ vựng JLPT N3 quan trọng", lessons[2].Description)
	assert.Equal(t, "vocab-0001", lessons[0].Vocabulary[0].ID)
	assert.Equal(t, "vocab-0031", lessons[1].Vocabulary[0].ID)
	assert.Equal(t, "vocab-0065", lessons[2].Vocabulary[4].ID)
	assert.Equal(t, "語64", lessons[2].Vocabulary[4].Kanji)
}

func TestVocabulary_DoesNotMutateInput(t *testing.T) {
	entries := makeEntries(3)

	_ = Vocabulary(entries, 2)

	for _, e := range entries {
		assert.Empty(t, e.ID)
	}
}

func TestOrder(t *testing.T) {
	entries := []domain.VocabularyEntry{
		{Kanji: "a", QualityScore: 3},
		{Kanji: "b", QualityScore: 4},
		{Kanji: "c", QualityScore: 3},
		{Kanji: "d", QualityScore: 4},
	}

	t.Run("source keeps order", func(t *testing.T) {
		got := Order(entries, SortSource)
		assert.Equal(t, entries, got)
	})

	t.Run("quality is stable and descending", func(t *testing.T) {
		got := Order(entries, SortQuality)
		var kanji []string
		for _, e := range got {
			kanji = append(kanji, e.Kanji)
		}
		assert.Equal(t, []string{"b", "d", "a", "c"}, kanji)
		assert.Equal(t, "a", entries[0].Kanji, "input must not be reordered")
	})
}

func TestGrammar(t *testing.T) {
	patterns := make([]domain.GrammarEntry, 12)
	for i := range patterns {
		patterns[i] = domain.GrammarEntry{Pattern: fmt.Sprintf("〜パターン%d", i)}
	}

	lessons := Grammar(patterns, DefaultGrammarSize)

	require.Len(t, lessons, 3)
	assert.Equal(t, "grammar-lesson-001", lessons[0].ID)
	assert.Equal(t, "Bài 3: Ngữ pháp N3", lessons[2].Title)
	assert.Equal(t, 2, lessons[2].GrammarCount)
	assert.Equal(t, "grammar-0012", lessons[2].Grammar[1].ID)
}

func TestSortPolicy_IsValid(t *testing.T) {
	assert.True(t, SortSource.IsValid())
	assert.True(t, SortQuality.IsValid())
	assert.False(t, SortPolicy("random").IsValid())
}
