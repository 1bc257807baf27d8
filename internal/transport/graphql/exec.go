package graphql

import (
	"context"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/service/lesson"
)

var (
	queryImplementors           = []string{"Query"}
	lessonPageImplementors      = []string{"LessonPage"}
	lessonImplementors          = []string{"Lesson"}
	vocabularyEntryImplementors = []string{"VocabularyEntry"}
	grammarEntryImplementors    = []string{"GrammarEntry"}
)

// executionContext walks one operation. Object marshalers return false when
// a non-null field failed, so the null propagates to the nearest nullable
// parent.
type executionContext struct {
	*graphql.OperationContext
	resolvers ResolverRoot
}

func (ec *executionContext) _Query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, queryImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		fctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{
			Object:     "Query",
			Field:      field,
			IsMethod:   true,
			IsResolver: true,
		})
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Query")
		case "lessons":
			v, ok := ec.queryLessons(fctx, field)
			if !ok {
				return graphql.Null
			}
			out.Values[i] = v
		case "lesson":
			out.Values[i] = ec.queryLesson(fctx, field)
		default:
			graphql.AddErrorf(fctx, "field %s is not supported", field.Name)
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) queryLessons(ctx context.Context, field graphql.CollectedField) (graphql.Marshaler, bool) {
	args := field.ArgumentMap(ec.Variables)
	kind, err := optionalString(args, "kind")
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, false
	}
	source, err := optionalString(args, "source")
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, false
	}
	limit, err := optionalInt(args, "limit")
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, false
	}
	offset, err := optionalInt(args, "offset")
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, false
	}

	page, err := ec.resolvers.Query().Lessons(ctx, kind, source, limit, offset)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, false
	}
	if page == nil {
		graphql.AddErrorf(ctx, "must not be null")
		return graphql.Null, false
	}
	return ec._LessonPage(ctx, field.Selections, page)
}

func (ec *executionContext) queryLesson(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	id, err := graphql.UnmarshalID(field.ArgumentMap(ec.Variables)["id"])
	if err != nil {
		graphql.AddError(ctx, domain.NewValidationError("id", err.Error()))
		return graphql.Null
	}

	obj, err := ec.resolvers.Query().Lesson(ctx, id)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null
	}
	if obj == nil {
		return graphql.Null
	}
	v, ok := ec._Lesson(ctx, field.Selections, obj)
	if !ok {
		return graphql.Null
	}
	return v
}

func (ec *executionContext) _LessonPage(ctx context.Context, sel ast.SelectionSet, obj *lesson.ListResult) (graphql.Marshaler, bool) {
	fields := graphql.CollectFields(ec.OperationContext, sel, lessonPageImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("LessonPage")
		case "items":
			fctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Object: "LessonPage", Field: field})
			v, ok := ec.lessonList(fctx, field.Selections, obj.Lessons)
			if !ok {
				return graphql.Null, false
			}
			out.Values[i] = v
		case "total":
			out.Values[i] = graphql.MarshalInt(obj.Total)
		case "limit":
			out.Values[i] = graphql.MarshalInt(obj.Limit)
		case "offset":
			out.Values[i] = graphql.MarshalInt(obj.Offset)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out, true
}

// lessonList resolves the items concurrently so that their entry loads
// land in the same dataloader batch.
func (ec *executionContext) lessonList(ctx context.Context, sel ast.SelectionSet, lessons []domain.LessonSummary) (graphql.Marshaler, bool) {
	ret := make(graphql.Array, len(lessons))
	ok := make([]bool, len(lessons))

	var wg sync.WaitGroup
	for i := range lessons {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					graphql.AddError(ctx, ec.Recover(ctx, r))
				}
			}()
			fctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Index: &i, Result: &lessons[i]})
			ret[i], ok[i] = ec._Lesson(fctx, sel, &lessons[i])
		}()
	}
	wg.Wait()

	for _, v := range ok {
		if !v {
			return graphql.Null, false
		}
	}
	return ret, true
}

func (ec *executionContext) _Lesson(ctx context.Context, sel ast.SelectionSet, obj *domain.LessonSummary) (graphql.Marshaler, bool) {
	fields := graphql.CollectFields(ec.OperationContext, sel, lessonImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Lesson")
		case "id":
			out.Values[i] = graphql.MarshalID(obj.ID.String())
		case "slug":
			out.Values[i] = graphql.MarshalString(obj.Slug)
		case "kind":
			out.Values[i] = graphql.MarshalString(string(obj.Kind))
		case "sourceFile":
			out.Values[i] = graphql.MarshalString(obj.SourceFile)
		case "position":
			out.Values[i] = graphql.MarshalInt(obj.Position)
		case "title":
			out.Values[i] = graphql.MarshalString(obj.Title)
		case "description":
			out.Values[i] = graphql.MarshalString(obj.Description)
		case "entryCount":
			out.Values[i] = graphql.MarshalInt(obj.EntryCount)
		case "vocabulary":
			fctx := ec.lessonFieldContext(ctx, field)
			entries, err := ec.resolvers.Lesson().Vocabulary(fctx, obj)
			if err != nil {
				graphql.AddError(fctx, err)
				return graphql.Null, false
			}
			list := make(graphql.Array, len(entries))
			for j := range entries {
				list[j] = ec._VocabularyEntry(field.Selections, &entries[j])
			}
			out.Values[i] = list
		case "grammar":
			fctx := ec.lessonFieldContext(ctx, field)
			entries, err := ec.resolvers.Lesson().Grammar(fctx, obj)
			if err != nil {
				graphql.AddError(fctx, err)
				return graphql.Null, false
			}
			list := make(graphql.Array, len(entries))
			for j := range entries {
				list[j] = ec._GrammarEntry(field.Selections, &entries[j])
			}
			out.Values[i] = list
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out, true
}

func (ec *executionContext) lessonFieldContext(ctx context.Context, field graphql.CollectedField) context.Context {
	return graphql.WithFieldContext(ctx, &graphql.FieldContext{
		Object:     "Lesson",
		Field:      field,
		IsMethod:   true,
		IsResolver: true,
	})
}

func (ec *executionContext) _VocabularyEntry(sel ast.SelectionSet, obj *domain.VocabularyEntry) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, vocabularyEntryImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("VocabularyEntry")
		case "id":
			out.Values[i] = graphql.MarshalString(obj.ID)
		case "kanji":
			out.Values[i] = graphql.MarshalString(obj.Kanji)
		case "hiragana":
			out.Values[i] = graphql.MarshalString(obj.Hiragana)
		case "pronunciation":
			out.Values[i] = graphql.MarshalString(obj.Pronunciation)
		case "meaning":
			out.Values[i] = graphql.MarshalString(obj.Meaning)
		case "example":
			out.Values[i] = graphql.MarshalString(obj.Example)
		case "qualityScore":
			out.Values[i] = graphql.MarshalInt(obj.QualityScore)
		case "page":
			out.Values[i] = graphql.MarshalInt(obj.Page)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

func (ec *executionContext) _GrammarEntry(sel ast.SelectionSet, obj *domain.GrammarEntry) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, grammarEntryImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("GrammarEntry")
		case "id":
			out.Values[i] = graphql.MarshalString(obj.ID)
		case "pattern":
			out.Values[i] = graphql.MarshalString(obj.Pattern)
		case "meaning":
			out.Values[i] = graphql.MarshalString(obj.Meaning)
		case "usage":
			out.Values[i] = graphql.MarshalString(obj.Usage)
		case "example":
			out.Values[i] = graphql.MarshalString(obj.Example)
		case "formation":
			out.Values[i] = graphql.MarshalString(obj.Formation)
		case "notes":
			out.Values[i] = graphql.MarshalString(obj.Notes)
		case "level":
			out.Values[i] = graphql.MarshalString(string(obj.Level))
		case "page":
			out.Values[i] = graphql.MarshalInt(obj.Page)
		default:
			out.Values[i] = graphql.Null
		}
	}
	return out
}

// --- argument helpers ---

func optionalString(args map[string]any, name string) (*string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, err := graphql.UnmarshalString(v)
	if err != nil {
		return nil, domain.NewValidationError(name, err.Error())
	}
	return &s, nil
}

func optionalInt(args map[string]any, name string) (*int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := graphql.UnmarshalInt(v)
	if err != nil {
		return nil, domain.NewValidationError(name, err.Error())
	}
	return &n, nil
}
