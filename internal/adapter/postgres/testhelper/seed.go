package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

// UniqueSource returns a source file name no other test uses.
func UniqueSource(prefix string) string {
	return fmt.Sprintf("%s-%s.pdf", prefix, uuid.New().String()[:8])
}

// VocabularyDocument builds a valid vocabulary document with lessonSizes[i]
// entries in lesson i.
func VocabularyDocument(source string, lessonSizes ...int) *domain.VocabularyDocument {
	doc := &domain.VocabularyDocument{
		DocumentMeta: domain.DocumentMeta{
			RunID:       uuid.NewString(),
			Kind:        domain.KindVocabulary,
			Title:       "Từ Vựng N3",
			SourceFile:  source,
			Generator:   "n3vocab test",
			ExtractedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	n := 0
	for i, size := range lessonSizes {
		l := domain.VocabularyLesson{
			ID:              fmt.Sprintf("lesson-%03d", i+1),
			Title:           fmt.Sprintf("Bài %d: Từ vựng N3", i+1),
			VocabularyCount: size,
		}
		for range size {
			n++
			l.Vocabulary = append(l.Vocabulary, domain.VocabularyEntry{
				ID:            fmt.Sprintf("vocab-%04d", n),
				Kanji:         "家族",
				Hiragana:      "かぞく",
				Pronunciation: "kazoku",
				Meaning:       fmt.Sprintf("family %d", n),
				QualityScore:  4,
				Page:          1,
			})
		}
		doc.Lessons = append(doc.Lessons, l)
	}
	doc.TotalLessons = len(doc.Lessons)
	doc.TotalVocabulary = n
	return doc
}

// GrammarDocument builds a valid grammar document with one lesson of n patterns.
func GrammarDocument(source string, n int) *domain.GrammarDocument {
	l := domain.GrammarLesson{ID: "grammar-lesson-001", Title: "Bài 1: Ngữ pháp N3", GrammarCount: n}
	for i := range n {
		l.Grammar = append(l.Grammar, domain.GrammarEntry{
			ID:        fmt.Sprintf("grammar-%04d", i+1),
			Pattern:   "〜ても",
			Meaning:   "even if",
			Formation: "V-て + も",
			Level:     domain.LevelN3,
		})
	}
	return &domain.GrammarDocument{
		DocumentMeta: domain.DocumentMeta{
			RunID:        uuid.NewString(),
			Kind:         domain.KindGrammar,
			Title:        "Ngữ Pháp N3",
			SourceFile:   source,
			ExtractedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalLessons: 1,
		},
		Lessons:      []domain.GrammarLesson{l},
		TotalGrammar: n,
	}
}

// CountRows returns the number of rows of table whose column equals value.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, column string, value any) int {
	t.Helper()
	var n int
	sql := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, table, column)
	if err := pool.QueryRow(context.Background(), sql, value).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
