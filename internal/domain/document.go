package domain

import (
	"fmt"
	"time"
)

// MaxQualityScore is the highest score a vocabulary entry can reach.
const MaxQualityScore = 4

// DocumentMeta holds the fields shared by both document kinds.
type DocumentMeta struct {
	RunID        string    `json:"runId"`
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SourceFile   string    `json:"sourceFile"`
	Generator    string    `json:"generator,omitempty"`
	ExtractedAt  time.Time `json:"extractedAt"`
	TotalLessons int       `json:"totalLessons"`
}

// VocabularyStats aggregates counters collected while extracting vocabulary.
type VocabularyStats struct {
	LinesProcessed      int     `json:"linesProcessed"`
	NoiseLines          int     `json:"noiseLines"`
	SectionsDetected    int     `json:"sectionsDetected"`
	ExampleLines        int     `json:"exampleLines"`
	UnmatchedLines      int     `json:"unmatchedLines"`
	ExtractedEntries    int     `json:"extractedEntries"`
	ValidEntries        int     `json:"validEntries"`
	RejectedEntries     int     `json:"rejectedEntries"`
	SuccessRate         float64 `json:"successRate"`
	EntriesWithKanji    int     `json:"entriesWithKanji"`
	EntriesWithHiragana int     `json:"entriesWithHiragana"`
	EntriesWithMeaning  int     `json:"entriesWithMeaning"`
	EntriesWithExample  int     `json:"entriesWithExample"`
	ReadingsResolved    int     `json:"readingsResolved"`
	AverageQuality      float64 `json:"averageQuality"`
	MaxQualityScore     int     `json:"maxQualityScore"`
}

// GrammarStats aggregates counters collected while extracting grammar patterns.
type GrammarStats struct {
	LinesProcessed    int `json:"linesProcessed"`
	SectionsDetected  int `json:"sectionsDetected"`
	SkippedLines      int `json:"skippedLines"`
	CandidatePatterns int `json:"candidatePatterns"`
	TotalPatterns     int `json:"totalPatterns"`
	RejectedPatterns  int `json:"rejectedPatterns"`
	PatternsPerLesson int `json:"patternsPerLesson"`
	WithMeaning       int `json:"withMeaning"`
	WithExample       int `json:"withExample"`
	WithFormation     int `json:"withFormation"`
}

// VocabularyDocument is the artifact of a vocabulary extraction run.
type VocabularyDocument struct {
	DocumentMeta
	Lessons         []VocabularyLesson `json:"lessons"`
	TotalVocabulary int                `json:"totalVocabulary"`
	Statistics      VocabularyStats    `json:"statistics"`
}

// GrammarDocument is the artifact of a grammar extraction run.
type GrammarDocument struct {
	DocumentMeta
	Lessons      []GrammarLesson `json:"lessons"`
	TotalGrammar int             `json:"totalGrammar"`
	Statistics   GrammarStats    `json:"statistics"`
}

// Validate checks that the document totals agree with its lessons.
func (d *VocabularyDocument) Validate() error {
	errs := d.DocumentMeta.validate(KindVocabulary, len(d.Lessons))
	seen := make(map[string]bool, len(d.Lessons))
	total := 0
	for i, l := range d.Lessons {
		if l.ID == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("lessons[%d].id", i), Message: "required"})
		} else if seen[l.ID] {
			errs = append(errs, FieldError{Field: fmt.Sprintf("lessons[%d].id", i), Message: "duplicate " + l.ID})
		}
		seen[l.ID] = true
		if l.VocabularyCount != len(l.Vocabulary) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("lessons[%d].vocabularyCount", i),
				Message: fmt.Sprintf("is %d but lesson has %d entries", l.VocabularyCount, len(l.Vocabulary)),
			})
		}
		total += len(l.Vocabulary)
	}
	if d.TotalVocabulary != total {
		errs = append(errs, FieldError{
			Field:   "totalVocabulary",
			Message: fmt.Sprintf("is %d but lessons hold %d entries", d.TotalVocabulary, total),
		})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Validate checks that the document totals agree with its lessons.
func (d *GrammarDocument) Validate() error {
	errs := d.DocumentMeta.validate(KindGrammar, len(d.Lessons))
	seen := make(map[string]bool, len(d.Lessons))
	total := 0
	for i, l := range d.Lessons {
		if l.ID == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("lessons[%d].id", i), Message: "required"})
		} else if seen[l.ID] {
			errs = append(errs, FieldError{Field: fmt.Sprintf("lessons[%d].id", i), Message: "duplicate " + l.ID})
		}
		seen[l.ID] = true
		if l.GrammarCount != len(l.Grammar) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("lessons[%d].grammarCount", i),
				Message: fmt.Sprintf("is %d but lesson has %d patterns", l.GrammarCount, len(l.Grammar)),
			})
		}
		total += len(l.Grammar)
	}
	if d.TotalGrammar != total {
		errs = append(errs, FieldError{
			Field:   "totalGrammar",
			Message: fmt.Sprintf("is %d but lessons hold %d patterns", d.TotalGrammar, total),
		})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func (m *DocumentMeta) validate(want Kind, lessons int) []FieldError {
	var errs []FieldError
	if m.Kind != want {
		errs = append(errs, FieldError{Field: "kind", Message: fmt.Sprintf("expected %q, got %q", want, m.Kind)})
	}
	if m.SourceFile == "" {
		errs = append(errs, FieldError{Field: "sourceFile", Message: "required"})
	}
	if m.TotalLessons != lessons {
		errs = append(errs, FieldError{
			Field:   "totalLessons",
			Message: fmt.Sprintf("is %d but document has %d lessons", m.TotalLessons, lessons),
		})
	}
	return errs
}
