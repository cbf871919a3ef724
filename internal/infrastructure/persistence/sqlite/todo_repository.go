package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rezkam/todos/internal/domain"
)

// timestampLayout is fixed width so lexical order equals chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

const todoColumns = "id, title, completed, created_at, updated_at"

func formatTime(t time.Time) string {
	return t.UTC().Truncate(domain.TimestampPrecision).Format(timestampLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var (
		todo               domain.Todo
		createdAt, updated string
	)
	if err := row.Scan(&todo.ID, &todo.Title, &todo.Completed, &createdAt, &updated); err != nil {
		return nil, err
	}

	var err error
	if todo.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if todo.UpdatedAt, err = time.Parse(timestampLayout, updated); err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", updated, err)
	}
	return &todo, nil
}

// FindTodos returns todos newest first, optionally filtered by completion.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	var args []any
	if params.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, *params.Completed)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return todos, nil
}

// FindTodoByID retrieves a single todo.
func (s *Store) FindTodoByID(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := scanTodo(s.conn.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// CreateTodo inserts a todo and returns it with its assigned ID.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	created, err := scanTodo(s.conn.QueryRowContext(ctx,
		`INSERT INTO todos (title, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+todoColumns,
		todo.Title, todo.Completed, formatTime(todo.CreatedAt), formatTime(todo.UpdatedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", translateError(err))
	}
	return created, nil
}

// UpdateTodo applies the non-nil fields of params and stamps updated_at.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error) {
	var title, completed any
	if params.Title != nil {
		title = *params.Title
	}
	if params.Completed != nil {
		completed = *params.Completed
	}

	updated, err := scanTodo(s.conn.QueryRowContext(ctx,
		`UPDATE todos
		    SET title      = COALESCE(?, title),
		        completed  = COALESCE(?, completed),
		        updated_at = max(?, created_at)
		  WHERE id = ?
		 RETURNING `+todoColumns,
		title, completed, formatTime(updatedAt), params.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", translateError(err))
	}
	return updated, nil
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
	}
	return nil
}

// BulkUpdateTodos updates every existing todo in params.IDs inside one
// transaction. IDs without a row are ignored.
func (s *Store) BulkUpdateTodos(ctx context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error) {
	if len(params.IDs) == 0 {
		return 0, nil
	}

	var completed any
	if params.Completed != nil {
		completed = *params.Completed
	}

	// One JSON array parameter keeps large id lists under SQLite's
	// bound-variable limit.
	ids, err := json.Marshal(params.IDs)
	if err != nil {
		return 0, fmt.Errorf("failed to encode todo ids: %w", err)
	}

	var count int
	err = s.executeInTransaction(ctx, "bulk_update_todos", func(txStore *Store) error {
		res, err := txStore.conn.ExecContext(ctx,
			`UPDATE todos
			    SET completed  = COALESCE(?, completed),
			        updated_at = max(?, created_at)
			  WHERE id IN (SELECT value FROM json_each(?))`,
			completed, formatTime(updatedAt), string(ids),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk update todos: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to bulk update todos: %w", err)
		}
		count = int(n)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountTodos counts todos, optionally filtered by completion.
func (s *Store) CountTodos(ctx context.Context, completed *bool) (int, error) {
	query := `SELECT count(*) FROM todos`
	var args []any
	if completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, *completed)
	}

	var count int
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return count, nil
}
