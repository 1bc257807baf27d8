// Package resolver implements the GraphQL resolvers for published lessons.
package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/service/lesson"
	gql "github.com/heartmarshall/n3vocab/internal/transport/graphql"
	"github.com/heartmarshall/n3vocab/internal/transport/graphql/dataloader"
)

// lessonService defines what the resolver needs from the lesson service.
type lessonService interface {
	ListLessons(ctx context.Context, in lesson.ListInput) (*lesson.ListResult, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error)
}

// Resolver is the root resolver.
type Resolver struct {
	lessons lessonService
}

// NewResolver creates a new root resolver.
func NewResolver(lessons lessonService) *Resolver {
	return &Resolver{lessons: lessons}
}

// Query returns the root query resolver.
func (r *Resolver) Query() gql.QueryResolver { return &queryResolver{r} }

// Lesson returns the resolver for lesson entry lists.
func (r *Resolver) Lesson() gql.LessonResolver { return &lessonResolver{r} }

type queryResolver struct{ *Resolver }

func (r *queryResolver) Lessons(ctx context.Context, kind, source *string, limit, offset *int) (*lesson.ListResult, error) {
	return r.lessons.ListLessons(ctx, lesson.ListInput{
		Kind:       deref(kind),
		SourceFile: deref(source),
		Limit:      deref(limit),
		Offset:     deref(offset),
	})
}

// Lesson fetches the lesson with its entries and primes the loaders, so
// resolving its entry list costs no further query.
func (r *queryResolver) Lesson(ctx context.Context, id string) (*domain.LessonSummary, error) {
	lessonID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewValidationError("id", "must be a valid UUID")
	}

	detail, err := r.lessons.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	loaders := dataloader.FromContext(ctx)
	switch detail.Kind {
	case domain.KindGrammar:
		loaders.GrammarByLessonID.Prime(ctx, detail.ID, detail.Grammar)
	default:
		loaders.VocabularyByLessonID.Prime(ctx, detail.ID, detail.Vocabulary)
	}
	return &detail.LessonSummary, nil
}

type lessonResolver struct{ *Resolver }

func (r *lessonResolver) Vocabulary(ctx context.Context, obj *domain.LessonSummary) ([]domain.VocabularyEntry, error) {
	if obj.Kind != domain.KindVocabulary {
		return []domain.VocabularyEntry{}, nil
	}
	return dataloader.FromContext(ctx).VocabularyByLessonID.Load(ctx, obj.ID)()
}

func (r *lessonResolver) Grammar(ctx context.Context, obj *domain.LessonSummary) ([]domain.GrammarEntry, error) {
	if obj.Kind != domain.KindGrammar {
		return []domain.GrammarEntry{}, nil
	}
	return dataloader.FromContext(ctx).GrammarByLessonID.Load(ctx, obj.ID)()
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
