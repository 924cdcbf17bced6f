package http

import (
	"errors"
	"fmt"
	"net/http"

	"ordercore/internal/pkg/errs"
	"ordercore/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrEmptyCart),
		errors.Is(err, errs.ErrProductInactive),
		errors.Is(err, errs.ErrProductUnavailable),
		errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// outcome classifies a handler result for the business metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errs.IsExpected(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

// respondError writes err as an ErrorResponse. Server-side failures are logged and
// answered with a generic message so storage details never reach the client.
func (s *Server) respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(status, ErrorResponse{
			Code:    status,
			Message: http.StatusText(status),
		})
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: clientMessage(err),
	})
}

// clientMessage drops the cause chain of conflict and not-found errors, which may carry driver text.
func clientMessage(err error) string {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return fmt.Sprintf("%s: %s already exists", errs.ErrConflict, conflict.ParamName)
	}
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("%s: %s", errs.ErrObjectNotFound, notFound.ParamName)
	}
	return err.Error()
}

// badRequest answers a request that could not be bound.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
