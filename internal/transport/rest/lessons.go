package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/service/lesson"
)

type lessonService interface {
	ListLessons(ctx context.Context, in lesson.ListInput) (*lesson.ListResult, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error)
}

// LessonHandler serves the read-only lesson endpoints.
type LessonHandler struct {
	lessons lessonService
	log     *slog.Logger
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(lessons lessonService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		lessons: lessons,
		log:     logger.With("handler", "lessons"),
	}
}

// List returns a page of lesson summaries.
// GET /api/lessons?kind=vocabulary&source=n3.pdf&limit=20&offset=0
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := lesson.ListInput{
		Kind:       q.Get("kind"),
		SourceFile: q.Get("source"),
	}

	var errs []domain.FieldError
	var ok bool
	if in.Limit, ok = queryInt(q.Get("limit")); !ok {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if in.Offset, ok = queryInt(q.Get("offset")); !ok {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}
	if len(errs) > 0 {
		writeDomainError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	result, err := h.lessons.ListLessons(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Get returns one lesson with its entries.
// GET /api/lessons/{id}
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, h.log, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	detail, err := h.lessons.GetLesson(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func queryInt(v string) (int, bool) {
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
