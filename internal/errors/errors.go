package errors

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tasktracker/internal/logger"
)

// Response error codes
const (
	CodeClientError = "CLIENT_ERROR"
	CodeServerError = "INTERNAL_SERVER_ERROR"
	CodeNotFound    = "NOT_FOUND"
)

// APIError is the single failure type every layer raises. It carries the
// client-facing message and the HTTP status it maps to.
type APIError struct {
	Status  int
	Message string
	cause   error
	stack   []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying infrastructure error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// New creates an APIError with an explicit status, capturing the stack at
// the point of creation for development-mode responses.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message, stack: debug.Stack()}
}

func BadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

// Internal wraps an unexpected error, preserving it for logging.
func Internal(cause error) *APIError {
	message := "Internal Server Error"
	if cause != nil {
		message = cause.Error()
	}
	e := New(http.StatusInternalServerError, message)
	e.cause = cause
	return e
}

// Normalize maps raw infrastructure failures into the taxonomy. Known
// store-level errors get specific client-safe messages; anything unmapped
// becomes a 500 with the original error preserved.
func Normalize(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		e := Conflict("Duplicate field value entered")
		e.cause = err
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		e := NotFound("Resource not found")
		e.cause = err
		return e
	}
	return Internal(err)
}

// devMode controls whether responses carry stack traces and raw 500
// messages. Never enabled in production.
var devMode = false

// SetDevMode toggles development-mode error responses.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// Respond normalizes err, logs it with severity matching the status class,
// and writes the uniform error envelope.
func Respond(c *gin.Context, err error) {
	e := Normalize(err)

	fields := []zap.Field{
		zap.Int("status", e.Status),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("message", e.Message),
	}
	if e.cause != nil {
		fields = append(fields, zap.Error(e.cause))
	}

	code := CodeClientError
	message := e.Message
	if e.Status >= http.StatusInternalServerError {
		// Server faults log the original error; client mistakes are warnings.
		logger.L().Error("server error", fields...)
		code = CodeServerError
		if !devMode {
			message = "Internal Server Error"
		}
	} else {
		logger.L().Warn("client error", fields...)
	}

	body := gin.H{
		"error":   code,
		"message": message,
	}
	if devMode && e.stack != nil {
		body["stack"] = string(e.stack)
	}

	c.JSON(e.Status, body)
}
