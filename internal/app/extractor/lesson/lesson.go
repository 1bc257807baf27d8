// Package lesson groups extracted entries into fixed-size lessons.
package lesson

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

// Default lesson sizes per document kind.
const (
	DefaultVocabularySize = 30
	DefaultGrammarSize    = 5
)

// SortPolicy decides the entry order before chunking.
type SortPolicy string

const (
	// SortSource keeps the order in which entries appear in the source.
	SortSource SortPolicy = "source"
	// SortQuality orders entries by descending quality score, keeping source
	// order among equal scores.
	SortQuality SortPolicy = "quality"
)

func (p SortPolicy) IsValid() bool {
	switch p {
	case SortSource, SortQuality:
		return true
	}
	return false
}

// Chunk splits items into contiguous batches of size items; the last batch
// may be shorter. Concatenating the batches yields items unchanged.
// A size below 1 puts everything in one batch.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size < 1 {
		size = len(items)
	}
	return slices.Collect(slices.Chunk(items, size))
}

// Order returns entries arranged according to policy. The input is not modified.
func Order(entries []domain.VocabularyEntry, policy SortPolicy) []domain.VocabularyEntry {
	out := slices.Clone(entries)
	if policy == SortQuality {
		slices.SortStableFunc(out, func(a, b domain.VocabularyEntry) int {
			return cmp.Compare(b.QualityScore, a.QualityScore)
		})
	}
	return out
}

// Vocabulary numbers entries vocab-0001, vocab-0002, ... in order and
// splits them into lessons of size entries.
func Vocabulary(entries []domain.VocabularyEntry, size int) []domain.VocabularyLesson {
	numbered := slices.Clone(entries)
	for i := range numbered {
		numbered[i].ID = fmt.Sprintf("vocab-%04d", i+1)
	}

	batches := Chunk(numbered, size)
	lessons := make([]domain.VocabularyLesson, 0, len(batches))
	for i, batch := range batches {
		n := i + 1
		lessons = append(lessons, domain.VocabularyLesson{
			ID:              fmt.Sprintf("lesson-%03d", n),
			Title:           fmt.Sprintf("Bài %d: Từ vựng N3", n),
			Description:     fmt.Sprintf("Học %d từ vựng JLPT N3 quan trọng", len(batch)),
			VocabularyCount: len(batch),
			Vocabulary:      batch,
		})
	}
	return lessons
}

// Grammar numbers patterns grammar-0001, ... in order and splits them into
// lessons of size patterns.
func Grammar(entries []domain.GrammarEntry, size int) []domain.GrammarLesson {
	numbered := slices.Clone(entries)
	for i := range numbered {
		numbered[i].ID = fmt.Sprintf("grammar-%04d", i+1)
	}

	batches := Chunk(numbered, size)
	lessons := make([]domain.GrammarLesson, 0, len(batches))
	for i, batch := range batches {
		n := i + 1
		lessons = append(lessons, domain.GrammarLesson{
			ID:           fmt.Sprintf("grammar-lesson-%03d", n),
			Title:        fmt.Sprintf("Bài %d: Ngữ pháp N3", n),
			Description:  fmt.Sprintf("Học %d mẫu ngữ pháp JLPT N3", len(batch)),
			GrammarCount: len(batch),
			Grammar:      batch,
		})
	}
	return lessons
}
