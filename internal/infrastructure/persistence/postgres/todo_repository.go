package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todos/internal/domain"
)

const todoColumns = "id, title, completed, created_at, updated_at"

// todoRow mirrors the todos table.
type todoRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *todoRow) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func collectTodo(rows pgx.Rows) (*domain.Todo, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[todoRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

// FindTodos returns todos newest first, optionally filtered by completion.
func (s *Store) FindTodos(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+todoColumns+`
		   FROM todos
		  WHERE ($1::boolean IS NULL OR completed = $1::boolean)
		  ORDER BY created_at DESC, id DESC`,
		params.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	dbRows, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[todoRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}

	todos := make([]*domain.Todo, 0, len(dbRows))
	for _, row := range dbRows {
		todos = append(todos, row.toDomain())
	}
	return todos, nil
}

// FindTodoByID retrieves a single todo.
func (s *Store) FindTodoByID(ctx context.Context, id int64) (*domain.Todo, error) {
	rows, err := s.db.Query(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query todo: %w", err)
	}

	todo, err := collectTodo(rows)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// CreateTodo inserts a todo and returns it with its assigned ID.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	rows, err := s.db.Query(ctx,
		`INSERT INTO todos (title, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+todoColumns,
		todo.Title, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", translateError(err))
	}

	created, err := collectTodo(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return created, nil
}

// UpdateTodo applies the non-nil fields of params and stamps updated_at
// in a single statement.
func (s *Store) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error) {
	rows, err := s.db.Query(ctx,
		`UPDATE todos
		    SET title      = COALESCE($2::varchar, title),
		        completed  = COALESCE($3::boolean, completed),
		        updated_at = GREATEST($4::timestamptz, created_at)
		  WHERE id = $1
		 RETURNING `+todoColumns,
		params.ID, params.Title, params.Completed, updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", translateError(err))
	}

	updated, err := collectTodo(rows)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTodoNotFound, params.ID)
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

// DeleteTodo removes a todo.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrTodoNotFound, id)
	}
	return nil
}

// BulkUpdateTodos updates every existing todo in params.IDs inside one
// transaction. IDs without a row are ignored.
func (s *Store) BulkUpdateTodos(ctx context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error) {
	var count int
	err := s.executeInTransaction(ctx, "bulk_update_todos", func(txStore *Store) error {
		tag, err := txStore.db.Exec(ctx,
			`UPDATE todos
			    SET completed  = COALESCE($2::boolean, completed),
			        updated_at = GREATEST($3::timestamptz, created_at)
			  WHERE id = ANY($1::bigint[])`,
			params.IDs, params.Completed, updatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to bulk update todos: %w", err)
		}
		count = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountTodos counts todos, optionally filtered by completion.
func (s *Store) CountTodos(ctx context.Context, completed *bool) (int, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM todos WHERE ($1::boolean IS NULL OR completed = $1::boolean)`,
		completed,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return int(count), nil
}
