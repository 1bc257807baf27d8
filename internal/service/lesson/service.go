// Package lesson serves published lessons to the read-only API.
package lesson

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/n3vocab/internal/domain"
)

type lessonRepo interface {
	List(ctx context.Context, f domain.LessonFilter) ([]domain.LessonSummary, int, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error)
}

// Pagination defaults used when the service is built without explicit limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Service provides lesson read operations.
type Service struct {
	lessons      lessonRepo
	log          *slog.Logger
	defaultLimit int
	maxLimit     int
}

// NewService creates a new lesson service. Non-positive limits fall back
// to DefaultLimit and MaxLimit.
func NewService(log *slog.Logger, lessons lessonRepo, defaultLimit, maxLimit int) *Service {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(DefaultLimit, maxLimit)
	}
	return &Service{
		lessons:      lessons,
		log:          log.With("service", "lesson"),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// ListInput holds the raw list parameters of a request.
type ListInput struct {
	Kind       string
	SourceFile string
	Limit      int
	Offset     int
}

// Validate checks the list parameters.
func (in ListInput) Validate() error {
	var errs []domain.FieldError
	if in.Kind != "" && !domain.Kind(in.Kind).IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be vocabulary or grammar"})
	}
	if in.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if in.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListResult is a page of lesson summaries.
type ListResult struct {
	Lessons []domain.LessonSummary `json:"lessons"`
	Total   int                    `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// ListLessons returns one page of lessons. A zero limit means the default;
// limits above the maximum are clamped.
func (s *Service) ListLessons(ctx context.Context, in ListInput) (*ListResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	limit := in.Limit
	switch {
	case limit == 0:
		limit = s.defaultLimit
	case limit > s.maxLimit:
		limit = s.maxLimit
	}

	f := domain.LessonFilter{SourceFile: in.SourceFile, Limit: limit, Offset: in.Offset}
	if in.Kind != "" {
		k := domain.Kind(in.Kind)
		f.Kind = &k
	}

	lessons, total, err := s.lessons.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	if lessons == nil {
		lessons = []domain.LessonSummary{}
	}

	return &ListResult{Lessons: lessons, Total: total, Limit: limit, Offset: in.Offset}, nil
}

// GetLesson returns a lesson with its entries.
func (s *Service) GetLesson(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	lesson, err := s.lessons.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return lesson, nil
}
