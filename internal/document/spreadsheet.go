package document

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

const summarySheet = "Summary"

var (
	vocabularyHeader = []any{"ID", "Kanji", "Hiragana", "Pronunciation", "Meaning", "Example", "Quality", "Page"}
	grammarHeader    = []any{"ID", "Pattern", "Meaning", "Usage", "Formation", "Example", "Notes", "Level", "Page"}
)

// WriteSpreadsheet exports doc as an xlsx workbook with a summary sheet and
// one sheet per lesson.
func WriteSpreadsheet(path string, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("export %s: %w: %w", path, domain.ErrWriteFailure, err)
	}

	var err error
	switch d := doc.(type) {
	case *domain.VocabularyDocument:
		err = fillVocabulary(f, d)
	case *domain.GrammarDocument:
		err = fillGrammar(f, d)
	default:
		err = fmt.Errorf("%w: %T", ErrUnsupportedDocument, doc)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("export %s: %w: %w", path, domain.ErrWriteFailure, err)
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("export %s: %w: %w", path, domain.ErrWriteFailure, err)
	}
	return nil
}

func fillVocabulary(f *excelize.File, d *domain.VocabularyDocument) error {
	rows := [][]any{
		{"Title", d.Title},
		{"Source", d.SourceFile},
		{"Run", d.RunID},
		{"Lessons", d.TotalLessons},
		{"Vocabulary", d.TotalVocabulary},
		{"Success rate", d.Statistics.SuccessRate},
		{"Average quality", d.Statistics.AverageQuality},
		{},
		{"Lesson", "Title", "Entries"},
	}
	for _, l := range d.Lessons {
		rows = append(rows, []any{l.ID, l.Title, l.VocabularyCount})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	for i, l := range d.Lessons {
		rows := make([][]any, 0, len(l.Vocabulary)+1)
		rows = append(rows, vocabularyHeader)
		for _, e := range l.Vocabulary {
			rows = append(rows, []any{e.ID, e.Kanji, e.Hiragana, e.Pronunciation, e.Meaning, e.Example, e.QualityScore, pageCell(e.Page)})
		}
		if err := addSheet(f, lessonSheet(i, l.ID), rows); err != nil {
			return err
		}
	}
	return nil
}

func fillGrammar(f *excelize.File, d *domain.GrammarDocument) error {
	rows := [][]any{
		{"Title", d.Title},
		{"Source", d.SourceFile},
		{"Run", d.RunID},
		{"Lessons", d.TotalLessons},
		{"Patterns", d.TotalGrammar},
		{},
		{"Lesson", "Title", "Patterns"},
	}
	for _, l := range d.Lessons {
		rows = append(rows, []any{l.ID, l.Title, l.GrammarCount})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	for i, l := range d.Lessons {
		rows := make([][]any, 0, len(l.Grammar)+1)
		rows = append(rows, grammarHeader)
		for _, e := range l.Grammar {
			rows = append(rows, []any{e.ID, e.Pattern, e.Meaning, e.Usage, e.Formation, e.Example, e.Notes, e.Level.String(), pageCell(e.Page)})
		}
		if err := addSheet(f, lessonSheet(i, l.ID), rows); err != nil {
			return err
		}
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("sheet %s: %w: %w", name, domain.ErrWriteFailure, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w: %w", sheet, i+1, domain.ErrWriteFailure, err)
		}
	}
	return nil
}

// lessonSheet derives a sheet name within excel's 31 character limit.
func lessonSheet(index int, id string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, id)
	if name == "" {
		name = fmt.Sprintf("lesson-%03d", index+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func pageCell(page int) any {
	if page == 0 {
		return ""
	}
	return page
}
