package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/http/response"
	"github.com/rezkam/todos/internal/ptr"
)

// ListTodos handles GET /api/todos.
// A present completed query parameter filters the listing.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	var params domain.ListTodosParams
	if query := r.URL.Query(); query.Has("completed") {
		completed := domain.ParseCompletedFilter(query.Get("completed"))
		params.Completed = &completed
	}

	todos, err := h.todoService.ListTodos(r.Context(), params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapTodosToDTO(todos))
}

// CreateTodo handles POST /api/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if _, err := decodeBody(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	created, err := h.todoService.CreateTodo(r.Context(), domain.CreateTodoInput{
		Title: ptr.Deref(req.Title, ""),
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todo created via HTTP", "todo_id", created.ID)

	response.Created(w, MapTodoToDTO(created))
}

// GetTodo handles GET /api/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	found, err := h.todoService.GetTodo(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapTodoToDTO(found))
}

// UpdateTodo handles PUT /api/todos/{id}.
// Only fields present in the body change; updated_at is always refreshed.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	var req UpdateTodoRequest
	present, err := decodeBody(r, &req)
	if err != nil || !present {
		// A missing todo is reported before any problem with the body.
		if _, findErr := h.todoService.GetTodo(r.Context(), id); findErr != nil {
			response.FromDomainError(w, r, findErr)
			return
		}
		if err != nil {
			writeDecodeError(w, r, err)
			return
		}
		response.BadRequest(w, response.MsgNoDataProvided)
		return
	}

	updated, err := h.todoService.UpdateTodo(r.Context(), domain.UpdateTodoParams{
		ID:        id,
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapTodoToDTO(updated))
}

// DeleteTodo handles DELETE /api/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		NotFound(w, r)
		return
	}

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todo deleted via HTTP", "todo_id", id)

	response.OK(w, MessageResponse{Message: "Todo deleted successfully"})
}

// BulkUpdateTodos handles PUT /api/todos/bulk.
func (h *TodoHandler) BulkUpdateTodos(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	present, err := decodeBody(r, &req)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}
	if !present || req.TodoIDs == nil || req.Updates == nil {
		response.BadRequest(w, response.MsgBulkFieldsRequired)
		return
	}

	ids := *req.TodoIDs
	if ids == nil {
		ids = []int64{}
	}

	count, err := h.todoService.BulkUpdateTodos(r.Context(), domain.BulkUpdateParams{
		IDs:       ids,
		Completed: req.Updates.Completed,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todos bulk updated via HTTP",
		"requested", len(ids),
		"updated", count)

	response.OK(w, BulkUpdateResponse{
		Message:      fmt.Sprintf("Updated %d todos successfully", count),
		UpdatedCount: count,
	})
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errInvalidJSON):
		response.BadRequest(w, response.MsgInvalidJSON)
	case errors.Is(err, errCompletedNotBoolean):
		response.BadRequest(w, response.MsgCompletedNotBoolean)
	default:
		response.FromDomainError(w, r, err)
	}
}
