package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Code is set on 409 answers so clients can tell conflicts apart.
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Conflict codes carried in errorResponse.Code.
const (
	CodeConflict        = "conflict"
	CodeAlreadyEnrolled = "already_enrolled"
	CodeSessionFull     = "session_full"
	CodeJoinInFlight    = "join_in_flight"
	CodeJoinRejected    = "join_rejected"
	CodeAuthInProgress  = "auth_in_progress"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "fields": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if ve, ok := domain.IsValidation(err); ok {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, errorResponse{Error: "role must be learner or tutor"}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, errorResponse{Error: "session not found"}
	case errors.Is(err, domain.ErrJoinRejected):
		return http.StatusConflict, errorResponse{Error: domain.ErrJoinRejected.Error(), Code: CodeJoinRejected}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Error: "account already exists", Code: CodeConflict}
	case errors.Is(err, domain.ErrSessionFull):
		return http.StatusConflict, errorResponse{Error: err.Error(), Code: CodeSessionFull}
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusConflict, errorResponse{Error: err.Error(), Code: CodeAlreadyEnrolled}
	case errors.Is(err, domain.ErrJoinInFlight):
		return http.StatusConflict, errorResponse{Error: err.Error(), Code: CodeJoinInFlight}
	case errors.Is(err, domain.ErrAuthInProgress):
		return http.StatusConflict, errorResponse{Error: err.Error(), Code: CodeAuthInProgress}
	case errors.Is(err, domain.ErrListUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: "failed to load sessions, try again"}
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrBackend):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend failure")
		return http.StatusBadGateway, errorResponse{Error: "backend unavailable, try again"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorResponse{Error: "request timed out"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
