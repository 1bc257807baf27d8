package graphql

import (
	"bytes"
	"context"
	_ "embed"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/service/lesson"
)

//go:embed schema.graphql
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSource})

// ResolverRoot gives the executor its resolvers.
type ResolverRoot interface {
	Query() QueryResolver
	Lesson() LessonResolver
}

// QueryResolver resolves the root query fields.
type QueryResolver interface {
	Lessons(ctx context.Context, kind, source *string, limit, offset *int) (*lesson.ListResult, error)
	Lesson(ctx context.Context, id string) (*domain.LessonSummary, error)
}

// LessonResolver resolves the entry lists of a lesson.
type LessonResolver interface {
	Vocabulary(ctx context.Context, obj *domain.LessonSummary) ([]domain.VocabularyEntry, error)
	Grammar(ctx context.Context, obj *domain.LessonSummary) ([]domain.GrammarEntry, error)
}

// Config configures NewExecutableSchema.
type Config struct {
	Resolvers ResolverRoot
}

// NewExecutableSchema creates an ExecutableSchema from the given config.
func NewExecutableSchema(cfg Config) graphql.ExecutableSchema {
	return &executableSchema{resolvers: cfg.Resolvers}
}

type executableSchema struct {
	resolvers ResolverRoot
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Complexity(_ context.Context, _, _ string, _ int, _ map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	ec := &executionContext{OperationContext: opCtx, resolvers: e.resolvers}

	if opCtx.Operation.Operation != ast.Query {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation: %s", opCtx.Operation.Operation))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false
		var buf bytes.Buffer
		ec._Query(ctx, opCtx.Operation.SelectionSet).MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}
