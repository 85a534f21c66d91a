package http

import (
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrWeightExceeded),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, commands.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPaymentNotVerified):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error body. Unclassified errors are logged and answered with a generic
// message naming the entity.
func (s *Server) fail(ctx echo.Context, err error, entity string) error {
	status := StatusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "entity", entity, "error", err)
		message = fmt.Sprintf("Failed to process %s", entity)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}
