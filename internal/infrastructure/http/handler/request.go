package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/domain"
)

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title *string `json:"title"`
}

// UpdateTodoRequest is the body of PUT /api/todos/{id}.
// Absent fields are left unchanged; a field present as null is rejected.
type UpdateTodoRequest struct {
	Title     *string
	Completed *bool
}

// UnmarshalJSON keeps track of which fields were present so an explicit
// null is not mistaken for an absent field.
func (r *UpdateTodoRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title     json.RawMessage `json:"title"`
		Completed json.RawMessage `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Title != nil {
		if isNull(raw.Title) {
			return domain.ErrTitleRequired
		}
		var title string
		if err := json.Unmarshal(raw.Title, &title); err != nil {
			return err
		}
		r.Title = &title
	}

	completed, err := decodeCompleted(raw.Completed)
	if err != nil {
		return err
	}
	r.Completed = completed
	return nil
}

// BulkUpdateRequest is the body of PUT /api/todos/bulk.
type BulkUpdateRequest struct {
	TodoIDs *[]int64     `json:"todo_ids"`
	Updates *BulkUpdates `json:"updates"`
}

// BulkUpdates holds the changes applied by a bulk update.
// Fields other than completed are ignored.
type BulkUpdates struct {
	Completed *bool
}

// UnmarshalJSON rejects a completed field that is present but not a boolean.
func (u *BulkUpdates) UnmarshalJSON(data []byte) error {
	var raw struct {
		Completed json.RawMessage `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	completed, err := decodeCompleted(raw.Completed)
	if err != nil {
		return err
	}
	u.Completed = completed
	return nil
}

// errCompletedNotBoolean reports a completed field present with a non-boolean value.
var errCompletedNotBoolean = errors.New("completed must be a boolean")

// decodeCompleted returns nil for an absent field.
func decodeCompleted(raw json.RawMessage) (*bool, error) {
	if raw == nil {
		return nil, nil
	}
	var completed bool
	if isNull(raw) || json.Unmarshal(raw, &completed) != nil {
		return nil, errCompletedNotBoolean
	}
	return &completed, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

var errInvalidJSON = errors.New("invalid JSON body")

// decodeBody decodes the request body into dst.
// An empty body or a literal null reports present=false and leaves dst untouched.
func decodeBody(r *http.Request, dst any) (present bool, err error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return false, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		if errors.Is(err, errCompletedNotBoolean) || errors.Is(err, domain.ErrTitleRequired) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return true, nil
}

// parseID reads the {id} path parameter. Only positive integers are valid.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
