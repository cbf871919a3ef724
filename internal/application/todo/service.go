package todo

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/todos/internal/domain"
)

const instrumentationName = "github.com/rezkam/todos/internal/application/todo"

// Service provides business logic for todo management.
// It holds no request state; every call goes straight to the Repository.
type Service struct {
	repo      Repository
	mutations metric.Int64Counter
}

// NewService creates a new todo service.
func NewService(repo Repository) *Service {
	// Only fails for invalid instrument names.
	mutations, _ := otel.Meter(instrumentationName).Int64Counter(
		"todos.mutations",
		metric.WithDescription("Number of successful todo mutations by operation"),
	)

	return &Service{
		repo:      repo,
		mutations: mutations,
	}
}

// ListTodos returns todos newest first, optionally filtered by completion.
func (s *Service) ListTodos(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error) {
	todos, err := s.repo.FindTodos(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a todo by ID.
func (s *Service) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	if id <= 0 {
		return nil, domain.ErrTodoNotFound
	}

	return s.repo.FindTodoByID(ctx, id)
}

// CreateTodo validates the input and inserts a new, incomplete todo.
// Nothing is written when validation fails.
func (s *Service) CreateTodo(ctx context.Context, input domain.CreateTodoInput) (*domain.Todo, error) {
	title, err := domain.NewTitle(input.Title)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTodo(ctx, domain.NewTodo(title, domain.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.recordMutation(ctx, "create", 1)
	return created, nil
}

// UpdateTodo applies a partial update. Fields left nil keep their value;
// updated_at is stamped regardless, so an empty update still touches the row.
// domain.ErrTodoNotFound takes precedence over title validation errors.
func (s *Service) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams) (*domain.Todo, error) {
	if params.ID <= 0 {
		return nil, domain.ErrTodoNotFound
	}

	if params.Title != nil {
		if _, err := domain.NewTitle(*params.Title); err != nil {
			// A missing todo is reported before an invalid title.
			if _, findErr := s.repo.FindTodoByID(ctx, params.ID); findErr != nil {
				return nil, findErr
			}
			return nil, err
		}
	}

	updated, err := s.repo.UpdateTodo(ctx, params, domain.Now())
	if err != nil {
		return nil, err
	}

	s.recordMutation(ctx, "update", 1)
	return updated, nil
}

// DeleteTodo removes a todo. Deleting a missing todo is domain.ErrTodoNotFound.
func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrTodoNotFound
	}

	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return err
	}

	s.recordMutation(ctx, "delete", 1)
	return nil
}

// BulkUpdateTodos applies params to every existing todo in params.IDs and
// returns how many were updated. Unknown IDs are skipped silently.
func (s *Service) BulkUpdateTodos(ctx context.Context, params domain.BulkUpdateParams) (int, error) {
	if params.IDs == nil {
		return 0, domain.ErrBulkUpdateFieldsRequired
	}
	if len(params.IDs) == 0 {
		return 0, nil
	}

	count, err := s.repo.BulkUpdateTodos(ctx, params, domain.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update todos: %w", err)
	}

	s.recordMutation(ctx, "bulk_update", int64(count))
	return count, nil
}

func (s *Service) recordMutation(ctx context.Context, operation string, n int64) {
	if s.mutations == nil || n == 0 {
		return
	}
	s.mutations.Add(ctx, n, metric.WithAttributes(attribute.String("operation", operation)))
}
