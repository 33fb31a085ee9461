package http

import (
	"errors"
	"log/slog"
	"net/http"

	"jobmatch/internal/generated/servers"
	"jobmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps domain error classes to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Infrastructure failures are logged and
// hidden behind a generic message.
func respondError(ctx echo.Context, logger *slog.Logger, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = "Internal server error"
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// errorHandler renders echo's own errors (routing, binding, validation) in the same
// Error body the handlers use.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			_ = respondError(ctx, logger, err)
			return
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(he.Code)
			return
		}
		_ = ctx.JSON(he.Code, servers.Error{Code: he.Code, Message: message})
	}
}
