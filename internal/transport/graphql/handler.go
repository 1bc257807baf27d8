package graphql

import (
	"log/slog"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/heartmarshall/n3vocab/internal/transport/graphql/dataloader"
)

// NewHandler serves es over GET and POST. Every request gets fresh entry
// loaders backed by entries.
func NewHandler(log *slog.Logger, es graphql.ExecutableSchema, entries dataloader.EntryRepo) http.Handler {
	srv := handler.New(es)
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.Use(extension.AutomaticPersistedQuery{Cache: lru.New[string](100)})
	srv.SetErrorPresenter(NewErrorPresenter(log))

	return dataloader.Middleware(entries)(srv)
}
