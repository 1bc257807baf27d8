package vocab

import (
	"log/slog"
	"math"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/lines"
	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// ReadingResolver looks up a kana reading for a kanji word.
type ReadingResolver interface {
	Reading(word string) (string, bool)
}

// Options tunes an Extractor.
type Options struct {
	MinQuality       int
	GenerateExamples bool
	// Lookahead is the number of following lines searched for an example
	// sentence, at most MaxLookahead.
	Lookahead int
	// Readings fills in readings for kanji-only entries when set.
	Readings ReadingResolver
}

// Result holds accepted entries in source order and the run counters.
type Result struct {
	Entries []domain.VocabularyEntry
	Stats   domain.VocabularyStats
}

// Extractor turns normalized lines into scored, filtered vocabulary entries.
type Extractor struct {
	log  *slog.Logger
	opts Options
}

// NewExtractor creates an Extractor.
func NewExtractor(log *slog.Logger, opts Options) *Extractor {
	if opts.Lookahead <= 0 || opts.Lookahead > MaxLookahead {
		opts.Lookahead = MaxLookahead
	}
	return &Extractor{log: log, opts: opts}
}

// Extract walks raw line by line. Noise lines and section headers are
// skipped and counted, every other line goes through ParseLine, and the
// resulting entries are scored and filtered. Lines used as an example
// sentence by an accepted entry are not parsed again.
func (x *Extractor) Extract(raw []lines.RawLine) Result {
	var (
		stats    domain.VocabularyStats
		entries  []domain.VocabularyEntry
		consumed = make(map[int]bool)
	)

	for i, rl := range raw {
		stats.LinesProcessed++

		switch {
		case consumed[i]:
			stats.ExampleLines++
			continue
		case lines.IsNoise(rl.Text):
			stats.NoiseLines++
			continue
		case lines.IsSectionHeader(rl.Text):
			stats.SectionsDetected++
			x.log.Debug("section header", slog.String("line", rl.Text), slog.Int("page", rl.Page))
			continue
		}

		c, ok := ParseLine(rl.Text, lookahead(raw, i, x.opts.Lookahead))
		if !ok {
			stats.UnmatchedLines++
			continue
		}
		if c.Matcher == "" {
			stats.UnmatchedLines++
		}
		e := domain.VocabularyEntry{
			Kanji:         c.Kanji,
			Hiragana:      c.Reading,
			Pronunciation: c.Pronunciation,
			Meaning:       c.Meaning,
			Example:       c.Example,
			Page:          rl.Page,
		}
		stats.ExtractedEntries++

		if e.Hiragana == "" && e.Kanji != "" && x.opts.Readings != nil {
			if reading, ok := x.opts.Readings.Reading(e.Kanji); ok {
				e.Hiragana = reading
				stats.ReadingsResolved++
			}
		}
		if e.Pronunciation == "" && e.Hiragana != "" {
			e.Pronunciation = japanese.Transliterate(e.Hiragana)
		}
		e.QualityScore = Score(&e)

		if !Accept(&e, x.opts.MinQuality) {
			stats.RejectedEntries++
			x.log.Debug("entry rejected",
				slog.String("line", rl.Text),
				slog.Int("page", rl.Page),
				slog.Int("score", e.QualityScore),
			)
			continue
		}
		if c.ExampleOffset > 0 {
			consumed[i+c.ExampleOffset] = true
		}
		entries = append(entries, e)
	}

	if x.opts.GenerateExamples {
		for i := range entries {
			if entries[i].Example == "" {
				entries[i].Example = TemplateExample(&entries[i], i)
			}
		}
	}

	summarize(&stats, entries)
	return Result{Entries: entries, Stats: stats}
}

func lookahead(raw []lines.RawLine, i, n int) []string {
	end := min(i+1+n, len(raw))
	if i+1 >= end {
		return nil
	}
	return lines.Texts(raw[i+1 : end])
}

func summarize(stats *domain.VocabularyStats, entries []domain.VocabularyEntry) {
	stats.ValidEntries = len(entries)
	stats.MaxQualityScore = domain.MaxQualityScore
	if stats.ExtractedEntries > 0 {
		stats.SuccessRate = round(float64(stats.ValidEntries)/float64(stats.ExtractedEntries)*100, 1)
	}

	total := 0
	for i := range entries {
		e := &entries[i]
		if e.HasKanji() {
			stats.EntriesWithKanji++
		}
		if e.HasReading() {
			stats.EntriesWithHiragana++
		}
		if e.Meaning != "" {
			stats.EntriesWithMeaning++
		}
		if e.Example != "" {
			stats.EntriesWithExample++
		}
		total += e.QualityScore
	}
	if len(entries) > 0 {
		stats.AverageQuality = round(float64(total)/float64(len(entries)), 2)
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
