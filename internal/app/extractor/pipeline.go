// Package extractor runs the textbook extraction pipeline: read the source,
// normalize it, extract vocabulary or grammar, group the result into lessons
// and persist the document.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/grammar"
	"github.com/heartmarshall/n3vocab/internal/app/extractor/lesson"
	"github.com/heartmarshall/n3vocab/internal/app/extractor/lines"
	"github.com/heartmarshall/n3vocab/internal/app/extractor/vocab"
	"github.com/heartmarshall/n3vocab/internal/document"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

// TextReader returns the page-ordered text of a source file.
type TextReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// Config holds the settings of one pipeline run.
type Config struct {
	Kind             domain.Kind
	InputPath        string
	OutputPath       string
	XLSXPath         string
	LessonSize       int
	MinQuality       int
	SortPolicy       lesson.SortPolicy
	GenerateExamples bool
	Lookahead        int
	Level            domain.Level
	DryRun           bool
	Generator        string
}

// Report summarizes a completed run.
type Report struct {
	Document document.Document
	Kind     domain.Kind
	Lessons  int
	Entries  int
	Written  []string
	Duration time.Duration
}

// Pipeline orchestrates a single extraction run.
type Pipeline struct {
	log      *slog.Logger
	reader   TextReader
	readings vocab.ReadingResolver
	cfg      Config
	now      func() time.Time
}

// NewPipeline creates a new Pipeline. readings may be nil.
func NewPipeline(log *slog.Logger, reader TextReader, readings vocab.ReadingResolver, cfg Config) *Pipeline {
	return &Pipeline{
		log:      log,
		reader:   reader,
		readings: readings,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Run executes the pipeline. Source and write errors are fatal; unmatched
// and rejected lines only show up in the document statistics.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := p.now()

	var text string
	err := p.phase("read", func() (err error) {
		text, err = p.reader.Read(ctx, p.cfg.InputPath)
		return err
	}, slog.String("input", p.cfg.InputPath))
	if err != nil {
		return nil, err
	}

	raw := lines.Normalize(text)
	p.log.Info("lines normalized", slog.Int("lines", len(raw)))

	var doc document.Document
	report := &Report{Kind: p.cfg.Kind}
	err = p.phase("extract", func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		meta := p.meta()
		switch p.cfg.Kind {
		case domain.KindGrammar:
			d := p.grammarDocument(meta, raw)
			report.Lessons, report.Entries = len(d.Lessons), d.TotalGrammar
			doc = d
		default:
			d := p.vocabularyDocument(meta, raw)
			report.Lessons, report.Entries = len(d.Lessons), d.TotalVocabulary
			doc = d
		}
		return doc.Validate()
	})
	if err != nil {
		return nil, err
	}
	report.Document = doc

	if p.cfg.DryRun {
		p.log.Info("dry run, skipping write",
			slog.Int("lessons", report.Lessons),
			slog.Int("entries", report.Entries),
		)
		report.Duration = p.now().Sub(start)
		return report, nil
	}

	err = p.phase("write", func() error {
		return document.WriteJSON(p.cfg.OutputPath, doc)
	}, slog.String("output", p.cfg.OutputPath))
	if err != nil {
		return nil, err
	}
	report.Written = append(report.Written, p.cfg.OutputPath)

	if p.cfg.XLSXPath != "" {
		err = p.phase("export", func() error {
			return document.WriteSpreadsheet(p.cfg.XLSXPath, doc)
		}, slog.String("output", p.cfg.XLSXPath))
		if err != nil {
			return nil, err
		}
		report.Written = append(report.Written, p.cfg.XLSXPath)
	}

	report.Duration = p.now().Sub(start)
	return report, nil
}

func (p *Pipeline) phase(name string, fn func() error, attrs ...any) error {
	start := time.Now()
	p.log.Info("starting phase", append([]any{slog.String("phase", name)}, attrs...)...)

	if err := fn(); err != nil {
		p.log.Warn("phase failed",
			slog.String("phase", name),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("%s: %w", name, err)
	}

	p.log.Info("phase completed",
		slog.String("phase", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (p *Pipeline) meta() domain.DocumentMeta {
	source := filepath.Base(p.cfg.InputPath)
	m := domain.DocumentMeta{
		RunID:       uuid.NewString(),
		Kind:        p.cfg.Kind,
		SourceFile:  source,
		Generator:   p.cfg.Generator,
		ExtractedAt: p.now().UTC(),
	}
	if p.cfg.Kind == domain.KindGrammar {
		m.Title = "Ngữ Pháp N3"
		m.Description = "Ngữ pháp JLPT N3 được trích xuất từ " + source
	} else {
		m.Title = "Từ Vựng N3"
		m.Description = "Từ vựng JLPT N3 được trích xuất từ " + source
	}
	return m
}

func (p *Pipeline) vocabularyDocument(meta domain.DocumentMeta, raw []lines.RawLine) *domain.VocabularyDocument {
	res := vocab.NewExtractor(p.log, vocab.Options{
		MinQuality:       p.cfg.MinQuality,
		GenerateExamples: p.cfg.GenerateExamples,
		Lookahead:        p.cfg.Lookahead,
		Readings:         p.readings,
	}).Extract(raw)

	size := p.cfg.LessonSize
	if size < 1 {
		size = lesson.DefaultVocabularySize
	}
	lessons := lesson.Vocabulary(lesson.Order(res.Entries, p.cfg.SortPolicy), size)
	meta.TotalLessons = len(lessons)

	p.log.Info("vocabulary extracted",
		slog.Int("extracted", res.Stats.ExtractedEntries),
		slog.Int("valid", res.Stats.ValidEntries),
		slog.Int("rejected", res.Stats.RejectedEntries),
		slog.Int("unmatched", res.Stats.UnmatchedLines),
		slog.Int("lessons", len(lessons)),
	)

	return &domain.VocabularyDocument{
		DocumentMeta:    meta,
		Lessons:         lessons,
		TotalVocabulary: len(res.Entries),
		Statistics:      res.Stats,
	}
}

func (p *Pipeline) grammarDocument(meta domain.DocumentMeta, raw []lines.RawLine) *domain.GrammarDocument {
	res := grammar.NewExtractor(p.log, grammar.Options{Level: p.cfg.Level}).Extract(raw)

	size := p.cfg.LessonSize
	if size < 1 {
		size = lesson.DefaultGrammarSize
	}
	lessons := lesson.Grammar(res.Entries, size)
	meta.TotalLessons = len(lessons)

	stats := res.Stats
	stats.PatternsPerLesson = size

	p.log.Info("grammar extracted",
		slog.Int("candidates", stats.CandidatePatterns),
		slog.Int("patterns", stats.TotalPatterns),
		slog.Int("rejected", stats.RejectedPatterns),
		slog.Int("lessons", len(lessons)),
	)

	return &domain.GrammarDocument{
		DocumentMeta: meta,
		Lessons:      lessons,
		TotalGrammar: len(res.Entries),
		Statistics:   stats,
	}
}
