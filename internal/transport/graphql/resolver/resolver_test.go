package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/n3vocab/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/n3vocab/internal/domain"
	lessonsvc "github.com/heartmarshall/n3vocab/internal/service/lesson"
	"github.com/heartmarshall/n3vocab/internal/transport/graphql/dataloader"
)

// Manual mocks (moq-style with func fields)

type lessonServiceMock struct {
	ListLessonsFunc func(ctx context.Context, in lessonsvc.ListInput) (*lessonsvc.ListResult, error)
	GetLessonFunc   func(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error)
}

func (m *lessonServiceMock) ListLessons(ctx context.Context, in lessonsvc.ListInput) (*lessonsvc.ListResult, error) {
	return m.ListLessonsFunc(ctx, in)
}

func (m *lessonServiceMock) GetLesson(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error) {
	return m.GetLessonFunc(ctx, id)
}

type entryRepoMock struct {
	VocabularyByLessonIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]lesson.VocabularyWithLessonID, error)
	GrammarByLessonIDsFunc    func(ctx context.Context, ids []uuid.UUID) ([]lesson.GrammarWithLessonID, error)
}

func (m *entryRepoMock) VocabularyByLessonIDs(ctx context.Context, ids []uuid.UUID) ([]lesson.VocabularyWithLessonID, error) {
	return m.VocabularyByLessonIDsFunc(ctx, ids)
}

func (m *entryRepoMock) GrammarByLessonIDs(ctx context.Context, ids []uuid.UUID) ([]lesson.GrammarWithLessonID, error) {
	return m.GrammarByLessonIDsFunc(ctx, ids)
}

func failingRepo(t *testing.T) *entryRepoMock {
	return &entryRepoMock{
		VocabularyByLessonIDsFunc: func(context.Context, []uuid.UUID) ([]lesson.VocabularyWithLessonID, error) {
			t.Error("unexpected vocabulary query")
			return nil, nil
		},
		GrammarByLessonIDsFunc: func(context.Context, []uuid.UUID) ([]lesson.GrammarWithLessonID, error) {
			t.Error("unexpected grammar query")
			return nil, nil
		},
	}
}

func withLoaders(repo dataloader.EntryRepo) context.Context {
	return dataloader.WithLoaders(context.Background(), dataloader.NewLoaders(repo))
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

func TestLessons_MapsArguments(t *testing.T) {
	var got lessonsvc.ListInput
	svc := &lessonServiceMock{
		ListLessonsFunc: func(_ context.Context, in lessonsvc.ListInput) (*lessonsvc.ListResult, error) {
			got = in
			return &lessonsvc.ListResult{}, nil
		},
	}

	_, err := NewResolver(svc).Query().Lessons(context.Background(), strPtr("grammar"), strPtr("n3.pdf"), intPtr(5), intPtr(10))
	require.NoError(t, err)
	assert.Equal(t, lessonsvc.ListInput{Kind: "grammar", SourceFile: "n3.pdf", Limit: 5, Offset: 10}, got)
}

func TestLessons_NilArgumentsUseZeroValues(t *testing.T) {
	var got lessonsvc.ListInput
	svc := &lessonServiceMock{
		ListLessonsFunc: func(_ context.Context, in lessonsvc.ListInput) (*lessonsvc.ListResult, error) {
			got = in
			return &lessonsvc.ListResult{}, nil
		},
	}

	_, err := NewResolver(svc).Query().Lessons(context.Background(), nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, lessonsvc.ListInput{}, got)
}

func TestLesson_InvalidID(t *testing.T) {
	svc := &lessonServiceMock{
		GetLessonFunc: func(context.Context, uuid.UUID) (*domain.LessonDetail, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	_, err := NewResolver(svc).Query().Lesson(context.Background(), "lesson-001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLesson_PropagatesNotFound(t *testing.T) {
	svc := &lessonServiceMock{
		GetLessonFunc: func(context.Context, uuid.UUID) (*domain.LessonDetail, error) {
			return nil, domain.ErrNotFound
		},
	}

	_, err := NewResolver(svc).Query().Lesson(withLoaders(failingRepo(t)), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLesson_PrimesGrammarLoader(t *testing.T) {
	id := uuid.New()
	svc := &lessonServiceMock{
		GetLessonFunc: func(_ context.Context, got uuid.UUID) (*domain.LessonDetail, error) {
			assert.Equal(t, id, got)
			return &domain.LessonDetail{
				LessonSummary: domain.LessonSummary{ID: id, Kind: domain.KindGrammar},
				Grammar:       []domain.GrammarEntry{{ID: "grammar-0001", Pattern: "〜ても"}},
			}, nil
		},
	}
	r := NewResolver(svc)
	ctx := withLoaders(failingRepo(t))

	summary, err := r.Query().Lesson(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, id, summary.ID)

	grammar, err := r.Lesson().Grammar(ctx, summary)
	require.NoError(t, err)
	require.Len(t, grammar, 1)
	assert.Equal(t, "〜ても", grammar[0].Pattern)
}

// ---------------------------------------------------------------------------
// Lesson entries
// ---------------------------------------------------------------------------

func TestLessonEntries_OtherKindIsEmpty(t *testing.T) {
	r := NewResolver(&lessonServiceMock{})
	ctx := withLoaders(failingRepo(t))

	grammar, err := r.Lesson().Grammar(ctx, &domain.LessonSummary{ID: uuid.New(), Kind: domain.KindVocabulary})
	require.NoError(t, err)
	assert.NotNil(t, grammar)
	assert.Empty(t, grammar)

	vocab, err := r.Lesson().Vocabulary(ctx, &domain.LessonSummary{ID: uuid.New(), Kind: domain.KindGrammar})
	require.NoError(t, err)
	assert.NotNil(t, vocab)
	assert.Empty(t, vocab)
}

func TestLessonEntries_LoadsVocabulary(t *testing.T) {
	id := uuid.New()
	repo := &entryRepoMock{
		VocabularyByLessonIDsFunc: func(_ context.Context, ids []uuid.UUID) ([]lesson.VocabularyWithLessonID, error) {
			assert.Equal(t, []uuid.UUID{id}, ids)
			return []lesson.VocabularyWithLessonID{
				{LessonID: id, VocabularyEntry: domain.VocabularyEntry{ID: "vocab-0001", Kanji: "駅"}},
			}, nil
		},
	}

	got, err := NewResolver(&lessonServiceMock{}).Lesson().Vocabulary(withLoaders(repo), &domain.LessonSummary{ID: id, Kind: domain.KindVocabulary})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "駅", got[0].Kanji)
}
