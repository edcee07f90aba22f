// internal/app/features/errors/errors.go
//
// Package errors writes JSON error responses and maps domain error kinds
// to HTTP status codes. Every error body has the shape {"error": "..."}.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"go.uber.org/zap"
)

// ErrorLogger writes error responses and logs the ones the client cannot fix.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// StatusFor maps err to an HTTP status.
func StatusFor(err error) int {
	switch {
	case stderrors.Is(err, apierr.ErrValidation), stderrors.Is(err, apierr.ErrAlreadyExists):
		return http.StatusBadRequest
	case stderrors.Is(err, apierr.ErrUnauthorized), stderrors.Is(err, apierr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case stderrors.Is(err, apierr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write responds to err. Domain errors carry their message to the client;
// anything else is logged and answered with a generic 500.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		e.LogServerError(w, r, "request failed", err)
		return
	}
	e.Log.Debug("request rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	WriteError(w, status, apierr.Message(err))
}

// LogServerError logs msg with the cause and writes a generic 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}
