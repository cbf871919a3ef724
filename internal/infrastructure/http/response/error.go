package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/todos/internal/domain"
)

// Client-facing error messages.
const (
	MsgTitleRequired       = "Title is required"
	MsgTitleTooLong        = "Title must be 255 characters or less"
	MsgCompletedNotBoolean = "Completed must be a boolean"
	MsgNoDataProvided      = "No data provided"
	MsgBulkFieldsRequired  = "todo_ids and updates are required"
	MsgInvalidJSON         = "Invalid JSON body"
	MsgTodoNotFound        = "Todo not found"
	MsgResourceNotFound    = "Resource not found"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgInternalServerError = "Internal server error"
)

// internalErrorJSON is written when even the error envelope cannot be encoded.
const internalErrorJSON = `{"error":"Internal server error"}`

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends an error envelope with the given status.
func Error(w http.ResponseWriter, message string, statusCode int) {
	body, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		body = []byte(internalErrorJSON)
		statusCode = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, message, http.StatusBadRequest)
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, message, http.StatusNotFound)
}

// MethodNotAllowed sends a 405 Method Not Allowed error.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, MsgMethodNotAllowed, http.StatusMethodNotAllowed)
}

// PayloadTooLarge sends a 413 Request Entity Too Large error.
func PayloadTooLarge(w http.ResponseWriter) {
	Error(w, MsgRequestBodyTooLarge, http.StatusRequestEntityTooLarge)
}

// InternalError sends a 500 Internal Server Error.
// The cause is logged server-side; the client only sees a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "Internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	Error(w, MsgInternalServerError, http.StatusInternalServerError)
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError

	switch {
	// Validation errors (400)
	case errors.Is(err, domain.ErrTitleRequired):
		BadRequest(w, MsgTitleRequired)
	case errors.Is(err, domain.ErrTitleTooLong):
		BadRequest(w, MsgTitleTooLong)
	case errors.Is(err, domain.ErrBulkUpdateFieldsRequired):
		BadRequest(w, MsgBulkFieldsRequired)

	// Not found errors (404)
	case errors.Is(err, domain.ErrTodoNotFound):
		NotFound(w, MsgTodoNotFound)

	// Body limit (413)
	case errors.As(err, &maxBytesErr):
		PayloadTooLarge(w)

	default:
		InternalError(w, r, err)
	}
}
