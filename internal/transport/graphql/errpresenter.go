package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/pkg/ctxutil"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorPresenter returns a gqlgen error presenter that maps domain errors
// to GraphQL error codes. Parse and validation errors raised by gqlgen
// itself carry no wrapped error and keep their own code.
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		var raw *gqlerror.Error
		if errors.As(err, &raw) && raw.Err == nil {
			return gqlErr
		}

		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			fields := make([]fieldError, len(ve.Errors))
			for i, fe := range ve.Errors {
				fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
			}
			gqlErr.Message = "validation failed"
			gqlErr.Extensions = map[string]any{"code": "VALIDATION", "fields": fields}

		case errors.Is(err, domain.ErrValidation):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION"}

		case errors.Is(err, domain.ErrNotFound):
			gqlErr.Message = "not found"
			gqlErr.Extensions = map[string]any{"code": "NOT_FOUND"}

		default:
			ctxutil.LoggerFromCtx(ctx, log).ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", err.Error()),
			)
			gqlErr.Message = "internal error"
			gqlErr.Extensions = map[string]any{"code": "INTERNAL"}
		}

		return gqlErr
	}
}
