package grammar

import (
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/lines"
	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/japanese"
)

// Options tunes an Extractor.
type Options struct {
	Level domain.Level
}

// Result holds retained patterns in source order and the run counters.
type Result struct {
	Entries []domain.GrammarEntry
	Stats   domain.GrammarStats
}

// Extractor groups lines into grammar patterns.
type Extractor struct {
	log  *slog.Logger
	opts Options
}

// NewExtractor creates an Extractor. The level defaults to N3.
func NewExtractor(log *slog.Logger, opts Options) *Extractor {
	if !opts.Level.IsValid() {
		opts.Level = domain.LevelN3
	}
	return &Extractor{log: log, opts: opts}
}

// Extract scans from the start of the grammar section. Each pattern-start
// line opens a pattern and the lines after it fill in its usage, formation,
// example, meaning and notes until the next pattern starts.
func (x *Extractor) Extract(raw []lines.RawLine) Result {
	var (
		stats   domain.GrammarStats
		entries []domain.GrammarEntry
		cur     *domain.GrammarEntry
	)

	flush := func() {
		if cur == nil {
			return
		}
		if keep(cur) {
			entries = append(entries, *cur)
		} else {
			stats.RejectedPatterns++
			x.log.Debug("pattern rejected", slog.String("pattern", cur.Pattern), slog.Int("page", cur.Page))
		}
		cur = nil
	}

	start := sectionStart(raw)
	if start < 0 {
		x.log.Warn("no grammar section found", slog.Int("lines", len(raw)))
		stats.LinesProcessed = len(raw)
		return Result{Stats: stats}
	}

	for _, rl := range raw[start:] {
		stats.LinesProcessed++
		text := rl.Text

		if japanese.IsDigits(text) || utf8.RuneCountInString(text) > maxLineLen {
			stats.SkippedLines++
			continue
		}

		startsPattern := IsPatternStart(text)
		if isLatinFormula(text) && cur != nil && cur.Formation == "" {
			startsPattern = false
		}

		if IsSectionStart(text) && !startsPattern {
			stats.SectionsDetected++
			continue
		}

		if startsPattern {
			flush()
			pattern, rest := splitPattern(text)
			cur = &domain.GrammarEntry{Pattern: pattern, Level: x.opts.Level, Page: rl.Page}
			stats.CandidatePatterns++
			if rest != "" {
				apply(cur, rest)
			}
			continue
		}

		if cur != nil {
			apply(cur, text)
		}
	}
	flush()

	stats.TotalPatterns = len(entries)
	for i := range entries {
		if entries[i].Meaning != "" {
			stats.WithMeaning++
		}
		if entries[i].Example != "" {
			stats.WithExample++
		}
		if entries[i].Formation != "" {
			stats.WithFormation++
		}
	}
	return Result{Entries: entries, Stats: stats}
}

// sectionStart returns the index of the first grammar section indicator,
// falling back to the first 〜X marker, or -1.
func sectionStart(raw []lines.RawLine) int {
	for i := range raw {
		if IsSectionStart(raw[i].Text) {
			return i
		}
	}
	for i := range raw {
		if hasPatternMarker(raw[i].Text) {
			return i
		}
	}
	return -1
}

func apply(e *domain.GrammarEntry, line string) {
	switch classify(line) {
	case kindUsage:
		e.Usage = join(e.Usage, line)
	case kindFormation:
		e.Formation = join(e.Formation, line)
	case kindExample:
		e.Example = join(e.Example, line)
	case kindMeaning:
		e.Meaning = join(e.Meaning, line)
	default:
		e.Notes = join(e.Notes, line)
	}
}

func keep(e *domain.GrammarEntry) bool {
	n := coreLen(e.Pattern)
	return n >= minPatternLen && n < maxPatternLenExc && (e.Meaning != "" || e.Example != "")
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
