package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jupiterclapton/cenackle/services/movie-service/internal/core/domain"
)

// Codes exposés dans "extensions.code".
const (
	CodeNotFound     = "NOT_FOUND"
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL"
)

// gqlError porte un code. graphql-go copie Extensions() dans la réponse
// quand le resolver renvoie directement une valeur de ce type.
type gqlError struct {
	msg  string
	code string
}

func (e *gqlError) Error() string { return e.msg }

func (e *gqlError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// toGQLError traduit une erreur du domaine. Les erreurs inattendues sont
// loguées et masquées au client.
func toGQLError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &gqlError{msg: err.Error(), code: CodeNotFound}
	case errors.Is(err, domain.ErrInvalidInput):
		return &gqlError{msg: err.Error(), code: CodeBadUserInput}
	default:
		slog.ErrorContext(ctx, "GraphQL resolver failed", "op", op, "error", err)
		return &gqlError{msg: "internal error", code: CodeInternal}
	}
}
