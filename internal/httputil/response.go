// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/ephemeral/internal/errors"
)

// Error codes returned in ErrorResponse.Error.
const (
	CodeNotFound          = "not_found"
	CodeCorruptedRecord   = "corrupted_record"
	CodeInvalidInput      = "invalid_input"
	CodeInternalError     = "internal_error"
	CodeBadRequest        = "bad_request"
	CodeValidationError   = "validation_error"
	CodeRateLimitExceeded = "rate_limit_exceeded"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping ties a base sentinel to its HTTP rendering. An empty message
// means the error text itself is returned to the caller.
type errorMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// errorMappings is checked in order; the first sentinel matched by errors.Is wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, CodeNotFound, "The requested resource was not found"},
	{apperrors.ErrCorrupted, http.StatusInternalServerError, CodeCorruptedRecord, "A stored record could not be decoded"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, CodeInvalidInput, ""},
}

// StatusFor returns the HTTP status and error body for err. Errors that wrap
// none of the known sentinels are reported as opaque internal errors.
func StatusFor(err error) (int, ErrorResponse) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.sentinel) {
			continue
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		return m.status, ErrorResponse{Error: m.code, Message: message}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Error:   CodeInternalError,
		Message: "An internal error occurred",
	}
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := StatusFor(err)

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusBadRequest, CodeBadRequest, "bad request", err, logger)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusUnprocessableEntity, CodeValidationError, "validation failed", err, logger)
}

func writeClientError(c *gin.Context, status int, code, logMsg string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn(logMsg, slog.Any("error", err))
	}
	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}
