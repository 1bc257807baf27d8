// Package publisher loads extracted documents and stores them in the
// database, replacing any earlier publication of the same source and kind.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/n3vocab/internal/document"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

type lessonStore interface {
	DeleteDocument(ctx context.Context, kind domain.Kind, source string) (bool, error)
	InsertDocument(ctx context.Context, meta domain.DocumentMeta, totalEntries int, stats any) (uuid.UUID, error)
	InsertVocabularyLessons(ctx context.Context, docID uuid.UUID, lessons []domain.VocabularyLesson) (int, error)
	InsertGrammarLessons(ctx context.Context, docID uuid.UUID, lessons []domain.GrammarLesson) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result describes one published document.
type Result struct {
	Path       string
	Kind       domain.Kind
	SourceFile string
	DocumentID uuid.UUID
	Lessons    int
	Entries    int
	Replaced   bool
}

// Publisher writes documents to the lesson store.
type Publisher struct {
	store  lessonStore
	tx     txManager
	log    *slog.Logger
	dryRun bool
}

// New creates a Publisher. In dry-run mode documents are loaded and
// validated but nothing is written.
func New(log *slog.Logger, store lessonStore, tx txManager, dryRun bool) *Publisher {
	return &Publisher{store: store, tx: tx, log: log.With("component", "publisher"), dryRun: dryRun}
}

// PublishFiles loads every path and publishes all documents in one
// transaction. A load or validation failure aborts before any write.
func (p *Publisher) PublishFiles(ctx context.Context, paths []string) ([]Result, error) {
	docs := make([]document.Document, len(paths))
	for i, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}

	start := time.Now()
	results := make([]Result, len(paths))
	for i, doc := range docs {
		results[i] = describe(paths[i], doc)
	}

	if p.dryRun {
		for _, r := range results {
			p.log.Info("dry run, document not published",
				slog.String("path", r.Path),
				slog.String("kind", r.Kind.String()),
				slog.Int("lessons", r.Lessons),
				slog.Int("entries", r.Entries),
			)
		}
		return results, nil
	}

	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		for i, doc := range docs {
			if err := p.publish(ctx, doc, &results[i]); err != nil {
				return fmt.Errorf("publish %s: %w", paths[i], err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.Info("documents published", slog.Int("documents", len(docs)), slog.Duration("duration", time.Since(start)))
	return results, nil
}

func (p *Publisher) publish(ctx context.Context, doc document.Document, r *Result) error {
	replaced, err := p.store.DeleteDocument(ctx, r.Kind, r.SourceFile)
	if err != nil {
		return err
	}
	r.Replaced = replaced

	var written int
	switch d := doc.(type) {
	case *domain.VocabularyDocument:
		r.DocumentID, err = p.store.InsertDocument(ctx, d.DocumentMeta, d.TotalVocabulary, d.Statistics)
		if err != nil {
			return err
		}
		written, err = p.store.InsertVocabularyLessons(ctx, r.DocumentID, d.Lessons)
	case *domain.GrammarDocument:
		r.DocumentID, err = p.store.InsertDocument(ctx, d.DocumentMeta, d.TotalGrammar, d.Statistics)
		if err != nil {
			return err
		}
		written, err = p.store.InsertGrammarLessons(ctx, r.DocumentID, d.Lessons)
	default:
		return fmt.Errorf("%w: %T", document.ErrUnsupportedDocument, doc)
	}
	if err != nil {
		return err
	}
	if written != r.Entries {
		return fmt.Errorf("%w: wrote %d of %d entries", domain.ErrConflict, written, r.Entries)
	}

	p.log.Info("document published",
		slog.String("path", r.Path),
		slog.String("document_id", r.DocumentID.String()),
		slog.Bool("replaced", replaced),
		slog.Int("lessons", r.Lessons),
		slog.Int("entries", r.Entries),
	)
	return nil
}

func describe(path string, doc document.Document) Result {
	r := Result{Path: path}
	switch d := doc.(type) {
	case *domain.VocabularyDocument:
		r.Kind, r.SourceFile = d.Kind, d.SourceFile
		r.Lessons, r.Entries = len(d.Lessons), d.TotalVocabulary
	case *domain.GrammarDocument:
		r.Kind, r.SourceFile = d.Kind, d.SourceFile
		r.Lessons, r.Entries = len(d.Lessons), d.TotalGrammar
	}
	return r
}
