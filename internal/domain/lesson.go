package domain

import "github.com/google/uuid"

// VocabularyLesson is a fixed-size positional batch of vocabulary entries.
type VocabularyLesson struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	VocabularyCount int               `json:"vocabularyCount"`
	Vocabulary      []VocabularyEntry `json:"vocabulary"`
}

// GrammarLesson is a fixed-size positional batch of grammar patterns.
type GrammarLesson struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	GrammarCount int            `json:"grammarCount"`
	Grammar      []GrammarEntry `json:"grammar"`
}

// LessonSummary is the list view of a published lesson of either kind.
// ID is the database key; Slug is the id the lesson had in its document.
type LessonSummary struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Kind        Kind      `json:"kind"`
	SourceFile  string    `json:"sourceFile"`
	Position    int       `json:"position"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EntryCount  int       `json:"entryCount"`
}

// LessonDetail is a published lesson with its entries. Only the slice
// matching Kind is populated.
type LessonDetail struct {
	LessonSummary
	Vocabulary []VocabularyEntry `json:"vocabulary,omitempty"`
	Grammar    []GrammarEntry    `json:"grammar,omitempty"`
}
