package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// TodoHandler adapts HTTP requests to todo service calls.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// NewAPIRouter builds the router mounted under /api.
// Both production code and tests should use this function to ensure identical behavior.
func NewAPIRouter(todoService *todo.Service) http.Handler {
	h := NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/health", Health)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.ListTodos)
		r.Post("/", h.CreateTodo)
		r.Put("/bulk", h.BulkUpdateTodos)
		r.Get("/{id}", h.GetTodo)
		r.Put("/{id}", h.UpdateTodo)
		r.Delete("/{id}", h.DeleteTodo)
	})

	return r
}

// NotFound responds to unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	response.NotFound(w, response.MsgResourceNotFound)
}

// MethodNotAllowed responds to known routes hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.MethodNotAllowed(w)
}
