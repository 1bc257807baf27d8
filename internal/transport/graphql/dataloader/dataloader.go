// Package dataloader provides per-request DataLoaders that batch the entry
// lookups of a lesson list into one SQL call per kind. DataLoaders call the
// lesson repository directly, bypassing the service layer.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/n3vocab/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// EntryRepo is the part of the lesson repository the loaders need.
type EntryRepo interface {
	VocabularyByLessonIDs(ctx context.Context, lessonIDs []uuid.UUID) ([]lesson.VocabularyWithLessonID, error)
	GrammarByLessonIDs(ctx context.Context, lessonIDs []uuid.UUID) ([]lesson.GrammarWithLessonID, error)
}

// Loaders contains the per-request DataLoaders. Created per request via NewLoaders.
type Loaders struct {
	VocabularyByLessonID *dataloader.Loader[uuid.UUID, []domain.VocabularyEntry]
	GrammarByLessonID    *dataloader.Loader[uuid.UUID, []domain.GrammarEntry]
}

// NewLoaders creates a new set of DataLoaders backed by repo.
// Must be called per request (loaders cache results within a single request).
func NewLoaders(repo EntryRepo) *Loaders {
	return &Loaders{
		VocabularyByLessonID: newLoader(newVocabularyBatchFn(repo)),
		GrammarByLessonID:    newLoader(newGrammarBatchFn(repo)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (the middleware is not configured).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
