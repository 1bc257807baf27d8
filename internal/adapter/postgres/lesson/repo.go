// Package lesson implements storage of published lesson documents using
// PostgreSQL. Writes replace a whole document; reads serve the lesson API.
package lesson

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/n3vocab/internal/adapter/postgres"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lesson repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var (
	vocabularyColumns = []string{
		"lesson_id", "position", "entry_id", "kanji", "hiragana", "pronunciation",
		"meaning", "example", "quality_score", "page",
	}
	grammarColumns = []string{
		"lesson_id", "position", "entry_id", "pattern", "meaning", "usage",
		"example", "formation", "notes", "level", "page",
	}
	summaryColumns = []string{
		"l.id", "l.slug", "d.kind", "d.source_file", "l.position", "l.title", "l.description", "l.entry_count",
	}
)

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// DeleteDocument removes the document published from source with the given
// kind, cascading to its lessons and entries. It reports whether a document
// existed.
func (r *Repo) DeleteDocument(ctx context.Context, kind domain.Kind, source string) (bool, error) {
	sql, args, err := psql.Delete("documents").
		Where(squirrel.Eq{"kind": string(kind), "source_file": source}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete document: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "document", source)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertDocument stores the document header and returns its new id.
// stats is stored as jsonb.
func (r *Repo) InsertDocument(ctx context.Context, meta domain.DocumentMeta, totalEntries int, stats any) (uuid.UUID, error) {
	id := uuid.New()
	sql, args, err := psql.Insert("documents").
		Columns("id", "kind", "source_file", "run_id", "title", "description", "generator",
			"extracted_at", "total_lessons", "total_entries", "statistics").
		Values(id, string(meta.Kind), meta.SourceFile, meta.RunID, meta.Title, meta.Description, meta.Generator,
			meta.ExtractedAt, meta.TotalLessons, totalEntries, stats).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert document: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return uuid.Nil, postgres.MapError(err, "document", meta.SourceFile)
	}
	return id, nil
}

// InsertVocabularyLessons stores lessons and their entries under docID and
// returns the number of entries written.
func (r *Repo) InsertVocabularyLessons(ctx context.Context, docID uuid.UUID, lessons []domain.VocabularyLesson) (int, error) {
	headers := make([]lessonHeader, len(lessons))
	var rows [][]any
	for i, l := range lessons {
		headers[i] = lessonHeader{id: uuid.New(), slug: l.ID, title: l.Title, description: l.Description, count: l.VocabularyCount}
		for j, e := range l.Vocabulary {
			rows = append(rows, []any{
				headers[i].id, j + 1, e.ID, e.Kanji, e.Hiragana, e.Pronunciation,
				e.Meaning, e.Example, int16(e.QualityScore), e.Page,
			})
		}
	}

	if err := r.insertHeaders(ctx, docID, headers); err != nil {
		return 0, err
	}
	return r.copyEntries(ctx, "vocabulary_entries", vocabularyColumns, rows)
}

// InsertGrammarLessons stores lessons and their patterns under docID and
// returns the number of patterns written.
func (r *Repo) InsertGrammarLessons(ctx context.Context, docID uuid.UUID, lessons []domain.GrammarLesson) (int, error) {
	headers := make([]lessonHeader, len(lessons))
	var rows [][]any
	for i, l := range lessons {
		headers[i] = lessonHeader{id: uuid.New(), slug: l.ID, title: l.Title, description: l.Description, count: l.GrammarCount}
		for j, e := range l.Grammar {
			rows = append(rows, []any{
				headers[i].id, j + 1, e.ID, e.Pattern, e.Meaning, e.Usage,
				e.Example, e.Formation, e.Notes, e.Level.String(), e.Page,
			})
		}
	}

	if err := r.insertHeaders(ctx, docID, headers); err != nil {
		return 0, err
	}
	return r.copyEntries(ctx, "grammar_entries", grammarColumns, rows)
}

type lessonHeader struct {
	id          uuid.UUID
	slug        string
	title       string
	description string
	count       int
}

// insertHeaders inserts lesson rows using pgx.Batch, numbering positions from 1.
func (r *Repo) insertHeaders(ctx context.Context, docID uuid.UUID, headers []lessonHeader) error {
	if len(headers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, h := range headers {
		batch.Queue(
			`INSERT INTO lessons (id, document_id, slug, position, title, description, entry_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			h.id, docID, h.slug, i+1, h.title, h.description, h.count,
		)
	}

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	for i := range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "lesson", headers[i].slug)
		}
	}
	return nil
}

func (r *Repo) copyEntries(ctx context.Context, table string, columns []string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := postgres.QuerierFromCtx(ctx, r.pool).CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return int(n), postgres.MapError(err, table, fmt.Sprintf("(%d rows)", len(rows)))
	}
	return int(n), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns lesson summaries ordered by kind, source and position,
// together with the total number of lessons matching the filter.
func (r *Repo) List(ctx context.Context, f domain.LessonFilter) ([]domain.LessonSummary, int, error) {
	base := psql.Select().
		From("lessons l").
		Join("documents d ON d.id = l.document_id")
	if f.Kind != nil {
		base = base.Where(squirrel.Eq{"d.kind": string(*f.Kind)})
	}
	if f.SourceFile != "" {
		base = base.Where(squirrel.Eq{"d.source_file": f.SourceFile})
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count lessons: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "lessons", "count")
	}

	listQuery := base.Columns(summaryColumns...).OrderBy("d.kind", "d.source_file", "l.position")
	if f.Limit > 0 {
		listQuery = listQuery.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		listQuery = listQuery.Offset(uint64(f.Offset))
	}
	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list lessons: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "lessons", "list")
	}
	summaries, err := pgx.CollectRows(rows, scanSummary)
	if err != nil {
		return nil, 0, postgres.MapError(err, "lessons", "list")
	}
	return summaries, total, nil
}

// Get returns a lesson with its entries.
// Returns domain.ErrNotFound if no lesson has the id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.LessonDetail, error) {
	sql, args, err := psql.Select(summaryColumns...).
		From("lessons l").
		Join("documents d ON d.id = l.document_id").
		Where(squirrel.Eq{"l.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lesson: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lesson", id.String())
	}
	summary, err := pgx.CollectExactlyOneRow(rows, scanSummary)
	if err != nil {
		return nil, postgres.MapError(err, "lesson", id.String())
	}

	detail := &domain.LessonDetail{LessonSummary: summary}
	ids := []uuid.UUID{id}
	switch summary.Kind {
	case domain.KindGrammar:
		rows, err := r.GrammarByLessonIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		detail.Grammar = make([]domain.GrammarEntry, len(rows))
		for i := range rows {
			detail.Grammar[i] = rows[i].GrammarEntry
		}
	default:
		rows, err := r.VocabularyByLessonIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		detail.Vocabulary = make([]domain.VocabularyEntry, len(rows))
		for i := range rows {
			detail.Vocabulary[i] = rows[i].VocabularyEntry
		}
	}
	return detail, nil
}

// VocabularyWithLessonID is a vocabulary entry tagged with its lesson.
type VocabularyWithLessonID struct {
	LessonID uuid.UUID
	domain.VocabularyEntry
}

// GrammarWithLessonID is a grammar entry tagged with its lesson.
type GrammarWithLessonID struct {
	LessonID uuid.UUID
	domain.GrammarEntry
}

// VocabularyByLessonIDs returns the vocabulary entries of all given lessons,
// ordered by lesson and position.
func (r *Repo) VocabularyByLessonIDs(ctx context.Context, lessonIDs []uuid.UUID) ([]VocabularyWithLessonID, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select("lesson_id", "entry_id", "kanji", "hiragana", "pronunciation", "meaning", "example", "quality_score", "page").
		From("vocabulary_entries").
		Where(squirrel.Eq{"lesson_id": lessonIDs}).
		OrderBy("lesson_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build vocabulary entries: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary entries", "batch")
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (VocabularyWithLessonID, error) {
		var (
			e     VocabularyWithLessonID
			score int16
		)
		err := row.Scan(&e.LessonID, &e.ID, &e.Kanji, &e.Hiragana, &e.Pronunciation, &e.Meaning, &e.Example, &score, &e.Page)
		e.QualityScore = int(score)
		return e, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary entries", "batch")
	}
	return entries, nil
}

// GrammarByLessonIDs returns the grammar entries of all given lessons,
// ordered by lesson and position.
func (r *Repo) GrammarByLessonIDs(ctx context.Context, lessonIDs []uuid.UUID) ([]GrammarWithLessonID, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select("lesson_id", "entry_id", "pattern", "meaning", "usage", "example", "formation", "notes", "level", "page").
		From("grammar_entries").
		Where(squirrel.Eq{"lesson_id": lessonIDs}).
		OrderBy("lesson_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build grammar entries: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "grammar entries", "batch")
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (GrammarWithLessonID, error) {
		var (
			e     GrammarWithLessonID
			level string
		)
		err := row.Scan(&e.LessonID, &e.ID, &e.Pattern, &e.Meaning, &e.Usage, &e.Example, &e.Formation, &e.Notes, &level, &e.Page)
		e.Level = domain.Level(level)
		return e, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "grammar entries", "batch")
	}
	return entries, nil
}

func scanSummary(row pgx.CollectableRow) (domain.LessonSummary, error) {
	var (
		s    domain.LessonSummary
		kind string
	)
	err := row.Scan(&s.ID, &s.Slug, &kind, &s.SourceFile, &s.Position, &s.Title, &s.Description, &s.EntryCount)
	s.Kind = domain.Kind(kind)
	return s, err
}
