package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/heartmarshall/n3vocab/internal/app/extractor"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

// pageBar renders source page progress. The bar is created on the first
// page because the page count is unknown until the source is opened.
type pageBar struct {
	bar *progressbar.ProgressBar
}

func newPageBar() *pageBar { return &pageBar{} }

func (b *pageBar) update(done, total int) {
	if b.bar == nil {
		b.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(color.BlueString("reading pages")),
			progressbar.OptionSetItsString("pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowElapsedTimeOnFinish(),
		)
	}
	_ = b.bar.Set(done)
}

func (b *pageBar) finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
}

func printSummary(r *extractor.Report) {
	color.Green("✓ extracted %d %s entries into %d lessons in %s", r.Entries, r.Kind, r.Lessons, r.Duration.Round(time.Millisecond))

	switch d := r.Document.(type) {
	case *domain.VocabularyDocument:
		s := d.Statistics
		fmt.Printf("  lines %d, noise %d, sections %d, unmatched %d\n",
			s.LinesProcessed, s.NoiseLines, s.SectionsDetected, s.UnmatchedLines)
		fmt.Printf("  extracted %d, valid %d, rejected %d, success %.1f%%, avg quality %.2f/%d\n",
			s.ExtractedEntries, s.ValidEntries, s.RejectedEntries, s.SuccessRate, s.AverageQuality, s.MaxQualityScore)
		if s.ReadingsResolved > 0 {
			fmt.Printf("  readings resolved %d\n", s.ReadingsResolved)
		}
	case *domain.GrammarDocument:
		s := d.Statistics
		fmt.Printf("  lines %d, sections %d, candidates %d, rejected %d\n",
			s.LinesProcessed, s.SectionsDetected, s.CandidatePatterns, s.RejectedPatterns)
		fmt.Printf("  with meaning %d, with example %d, with formation %d\n",
			s.WithMeaning, s.WithExample, s.WithFormation)
	}

	if len(r.Written) == 0 {
		color.Yellow("  dry run: nothing written")
		return
	}
	for _, path := range r.Written {
		color.Cyan("  wrote %s", path)
	}
}
