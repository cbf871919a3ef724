package todo

import (
	"context"
	"time"

	"github.com/rezkam/todos/internal/domain"
)

// Repository defines storage operations for todo management.
// Every mutating method is atomic: it either fully applies or leaves the
// table unchanged.
type Repository interface {
	// FindTodos returns todos ordered newest created first (ties by ID descending),
	// optionally filtered by completion.
	FindTodos(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error)

	// FindTodoByID retrieves a single todo.
	// Returns domain.ErrTodoNotFound if it doesn't exist.
	FindTodoByID(ctx context.Context, id int64) (*domain.Todo, error)

	// CreateTodo inserts the todo with the timestamps it carries and returns
	// it with the datastore-assigned ID.
	CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)

	// UpdateTodo applies the non-nil fields of params and sets updated_at.
	// Returns domain.ErrTodoNotFound if the todo doesn't exist.
	UpdateTodo(ctx context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error)

	// DeleteTodo removes a todo.
	// Returns domain.ErrTodoNotFound if it doesn't exist.
	DeleteTodo(ctx context.Context, id int64) error

	// BulkUpdateTodos updates every existing todo in params.IDs in a single
	// transaction and returns how many rows matched.
	BulkUpdateTodos(ctx context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error)

	// CountTodos counts todos, optionally filtered by completion.
	CountTodos(ctx context.Context, completed *bool) (int, error)

	// Atomic runs fn inside a transaction. fn receives a Repository bound to
	// that transaction; returning an error rolls everything back.
	Atomic(ctx context.Context, fn func(tx Repository) error) error
}
