package errors

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorCode enum for machine-readable errors
type ErrorCode string

const (
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrUpstream     ErrorCode = "UPSTREAM" // search engine call failed
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrConflict     ErrorCode = "CONFLICT" // e.g. concurrent idempotent request
	ErrInternal     ErrorCode = "INTERNAL"
)

// AppError carries the "User View" and the "System View"
type AppError struct {
	Code     ErrorCode // Machine code (for frontend logic)
	Message  string    // User-facing message, carries upstream error text verbatim
	Internal error     // Original error - NEVER show to user beyond Message
	Stack    string    // Stack trace for audit
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New captures the stack trace at the point the error occurred.
func New(code ErrorCode, msg string, internal error) *AppError {
	return &AppError{
		Code:     code,
		Message:  msg,
		Internal: internal,
		Stack:    string(debug.Stack()),
	}
}

// RespondError maps an error to its HTTP status and writes the JSON body.
// Engine failures and bad input are 400, missing entities 404; anything
// unrecognized is wrapped as a 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())

	var appErr *AppError
	if customErr, ok := err.(*AppError); ok {
		appErr = customErr
	} else {
		appErr = New(ErrInternal, "Unexpected system error", err)
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case ErrInvalidInput, ErrUpstream:
		status = http.StatusBadRequest
	case ErrNotFound:
		status = http.StatusNotFound
	case ErrConflict:
		status = http.StatusConflict
	}

	logFields := []any{
		"req_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"code", appErr.Code,
		"user_msg", appErr.Message,
	}

	if status == http.StatusInternalServerError {
		logFields = append(logFields, "internal_err", appErr.Internal, "stack", appErr.Stack)
		slog.Error("Internal Server Error", logFields...)
	} else {
		if appErr.Internal != nil {
			logFields = append(logFields, "internal_details", appErr.Internal)
		}
		slog.Warn("Request Failed", logFields...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error_code": string(appErr.Code),
		"message":    appErr.Message,
		"request_id": reqID,
	})
}
