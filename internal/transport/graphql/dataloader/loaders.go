package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

func newVocabularyBatchFn(repo EntryRepo) dataloader.BatchFunc[uuid.UUID, []domain.VocabularyEntry] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.VocabularyEntry] {
		rows, err := repo.VocabularyByLessonIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.VocabularyEntry](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.VocabularyEntry, len(keys))
		for _, r := range rows {
			grouped[r.LessonID] = append(grouped[r.LessonID], r.VocabularyEntry)
		}
		return mapResults(keys, grouped, emptySlice[domain.VocabularyEntry])
	}
}

func newGrammarBatchFn(repo EntryRepo) dataloader.BatchFunc[uuid.UUID, []domain.GrammarEntry] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.GrammarEntry] {
		rows, err := repo.GrammarByLessonIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.GrammarEntry](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.GrammarEntry, len(keys))
		for _, r := range rows {
			grouped[r.LessonID] = append(grouped[r.LessonID], r.GrammarEntry)
		}
		return mapResults(keys, grouped, emptySlice[domain.GrammarEntry])
	}
}

// errorResults returns n results that all carry err.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

func emptySlice[T any]() []T {
	return []T{}
}
