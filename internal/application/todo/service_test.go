package todo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/domain"
)

type mockRepo struct {
	findTodosFn    func(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error)
	findTodoByIDFn func(ctx context.Context, id int64) (*domain.Todo, error)
	createTodoFn   func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	updateTodoFn   func(ctx context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error)
	deleteTodoFn   func(ctx context.Context, id int64) error
	bulkUpdateFn   func(ctx context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error)
	countTodosFn   func(ctx context.Context, completed *bool) (int, error)
	atomicFn       func(ctx context.Context, fn func(tx Repository) error) error
}

func (m *mockRepo) FindTodos(ctx context.Context, params domain.ListTodosParams) ([]*domain.Todo, error) {
	if m.findTodosFn != nil {
		return m.findTodosFn(ctx, params)
	}
	panic("FindTodos not implemented")
}

func (m *mockRepo) FindTodoByID(ctx context.Context, id int64) (*domain.Todo, error) {
	if m.findTodoByIDFn != nil {
		return m.findTodoByIDFn(ctx, id)
	}
	panic("FindTodoByID not implemented")
}

func (m *mockRepo) CreateTodo(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if m.createTodoFn != nil {
		return m.createTodoFn(ctx, todo)
	}
	panic("CreateTodo not implemented")
}

func (m *mockRepo) UpdateTodo(ctx context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error) {
	if m.updateTodoFn != nil {
		return m.updateTodoFn(ctx, params, updatedAt)
	}
	panic("UpdateTodo not implemented")
}

func (m *mockRepo) DeleteTodo(ctx context.Context, id int64) error {
	if m.deleteTodoFn != nil {
		return m.deleteTodoFn(ctx, id)
	}
	panic("DeleteTodo not implemented")
}

func (m *mockRepo) BulkUpdateTodos(ctx context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error) {
	if m.bulkUpdateFn != nil {
		return m.bulkUpdateFn(ctx, params, updatedAt)
	}
	panic("BulkUpdateTodos not implemented")
}

func (m *mockRepo) CountTodos(ctx context.Context, completed *bool) (int, error) {
	if m.countTodosFn != nil {
		return m.countTodosFn(ctx, completed)
	}
	panic("CountTodos not implemented")
}

// Atomic executes callback without transaction unless overridden.
func (m *mockRepo) Atomic(ctx context.Context, fn func(tx Repository) error) error {
	if m.atomicFn != nil {
		return m.atomicFn(ctx, fn)
	}
	return fn(m)
}

func TestCreateTodo_ValidTitle(t *testing.T) {
	var captured *domain.Todo
	repo := &mockRepo{
		createTodoFn: func(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
			captured = todo
			saved := *todo
			saved.ID = 42
			return &saved, nil
		},
	}
	svc := NewService(repo)

	before := domain.Now()
	created, err := svc.CreateTodo(context.Background(), domain.CreateTodoInput{Title: "  Buy milk  "})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "  Buy milk  ", captured.Title)
	assert.False(t, captured.Completed)
	assert.Equal(t, captured.CreatedAt, captured.UpdatedAt)
	assert.False(t, captured.CreatedAt.Before(before))
	assert.Equal(t, time.UTC, captured.CreatedAt.Location())

	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "  Buy milk  ", created.Title)
}

func TestCreateTodo_InvalidTitleNeverReachesRepository(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "missing", title: "", wantErr: domain.ErrTitleRequired},
		{name: "too long", title: strings.Repeat("x", domain.MaxTitleLength+1), wantErr: domain.ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockRepo{}) // any repository call panics

			_, err := svc.CreateTodo(context.Background(), domain.CreateTodoInput{Title: tt.title})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTodo_RepositoryErrorIsWrapped(t *testing.T) {
	dbErr := errors.New("connection reset")
	svc := NewService(&mockRepo{
		createTodoFn: func(context.Context, *domain.Todo) (*domain.Todo, error) { return nil, dbErr },
	})

	_, err := svc.CreateTodo(context.Background(), domain.CreateTodoInput{Title: "Task"})
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to create todo")
}

func TestGetTodo_NonPositiveIDIsNotFound(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.GetTodo(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)

	_, err = svc.GetTodo(context.Background(), -3)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestGetTodo_PassesThroughNotFound(t *testing.T) {
	svc := NewService(&mockRepo{
		findTodoByIDFn: func(_ context.Context, id int64) (*domain.Todo, error) {
			assert.Equal(t, int64(7), id)
			return nil, domain.ErrTodoNotFound
		},
	})

	_, err := svc.GetTodo(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestListTodos_ForwardsFilter(t *testing.T) {
	completed := true
	var captured domain.ListTodosParams
	svc := NewService(&mockRepo{
		findTodosFn: func(_ context.Context, params domain.ListTodosParams) ([]*domain.Todo, error) {
			captured = params
			return []*domain.Todo{{ID: 1, Title: "a", Completed: true}}, nil
		},
	})

	todos, err := svc.ListTodos(context.Background(), domain.ListTodosParams{Completed: &completed})
	require.NoError(t, err)

	require.NotNil(t, captured.Completed)
	assert.True(t, *captured.Completed)
	assert.Len(t, todos, 1)
}

func TestUpdateTodo_KeepsTitleVerbatimAndStampsTime(t *testing.T) {
	var (
		capturedParams domain.UpdateTodoParams
		capturedAt     time.Time
	)
	svc := NewService(&mockRepo{
		updateTodoFn: func(_ context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error) {
			capturedParams = params
			capturedAt = updatedAt
			return &domain.Todo{ID: params.ID, Title: *params.Title, UpdatedAt: updatedAt}, nil
		},
	})

	title := "  Renamed  "
	before := domain.Now()
	_, err := svc.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: 3, Title: &title})
	require.NoError(t, err)

	require.NotNil(t, capturedParams.Title)
	assert.Equal(t, "  Renamed  ", *capturedParams.Title)
	assert.Nil(t, capturedParams.Completed)
	assert.False(t, capturedAt.Before(before))
}

func TestUpdateTodo_EmptyUpdateStillStamps(t *testing.T) {
	called := false
	svc := NewService(&mockRepo{
		updateTodoFn: func(_ context.Context, params domain.UpdateTodoParams, updatedAt time.Time) (*domain.Todo, error) {
			called = true
			assert.Nil(t, params.Title)
			assert.Nil(t, params.Completed)
			assert.False(t, updatedAt.IsZero())
			return &domain.Todo{ID: params.ID, UpdatedAt: updatedAt}, nil
		},
	})

	_, err := svc.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: 3})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestUpdateTodo_InvalidTitleOnExistingTodo(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "empty", title: "", wantErr: domain.ErrTitleRequired},
		{name: "too long", title: strings.Repeat("x", domain.MaxTitleLength+1), wantErr: domain.ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockRepo{
				findTodoByIDFn: func(_ context.Context, id int64) (*domain.Todo, error) {
					return &domain.Todo{ID: id, Title: "Existing"}, nil
				},
			}) // updateTodoFn unset: the update must never run

			_, err := svc.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: 3, Title: &tt.title})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateTodo_MissingTodoWinsOverInvalidTitle(t *testing.T) {
	svc := NewService(&mockRepo{
		findTodoByIDFn: func(context.Context, int64) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	})
	empty := ""

	_, err := svc.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: 999, Title: &empty})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	assert.NotErrorIs(t, err, domain.ErrTitleRequired)
}

func TestUpdateTodo_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{
		updateTodoFn: func(context.Context, domain.UpdateTodoParams, time.Time) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	})
	done := true

	_, err := svc.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: 99, Completed: &done})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestDeleteTodo(t *testing.T) {
	deleted := map[int64]bool{}
	svc := NewService(&mockRepo{
		deleteTodoFn: func(_ context.Context, id int64) error {
			if deleted[id] {
				return domain.ErrTodoNotFound
			}
			deleted[id] = true
			return nil
		},
	})

	require.NoError(t, svc.DeleteTodo(context.Background(), 5))
	assert.ErrorIs(t, svc.DeleteTodo(context.Background(), 5), domain.ErrTodoNotFound)
}

func TestBulkUpdateTodos(t *testing.T) {
	done := true
	var capturedAt time.Time
	svc := NewService(&mockRepo{
		bulkUpdateFn: func(_ context.Context, params domain.BulkUpdateParams, updatedAt time.Time) (int, error) {
			assert.Equal(t, []int64{1, 2, 999}, params.IDs)
			require.NotNil(t, params.Completed)
			assert.True(t, *params.Completed)
			capturedAt = updatedAt
			return 2, nil
		},
	})

	count, err := svc.BulkUpdateTodos(context.Background(), domain.BulkUpdateParams{IDs: []int64{1, 2, 999}, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.False(t, capturedAt.IsZero())
}

func TestBulkUpdateTodos_EmptyIDsSkipsRepository(t *testing.T) {
	svc := NewService(&mockRepo{})

	count, err := svc.BulkUpdateTodos(context.Background(), domain.BulkUpdateParams{IDs: []int64{}})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBulkUpdateTodos_NilIDsRejected(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.BulkUpdateTodos(context.Background(), domain.BulkUpdateParams{})
	assert.ErrorIs(t, err, domain.ErrBulkUpdateFieldsRequired)
}

func TestBulkUpdateTodos_CommitFailureSurfaces(t *testing.T) {
	commitErr := errors.New("commit failed")
	svc := NewService(&mockRepo{
		bulkUpdateFn: func(context.Context, domain.BulkUpdateParams, time.Time) (int, error) {
			return 0, commitErr
		},
	})

	count, err := svc.BulkUpdateTodos(context.Background(), domain.BulkUpdateParams{IDs: []int64{1}})
	assert.ErrorIs(t, err, commitErr)
	assert.Zero(t, count)
}

func TestSeed_EmptyTableInsertsSamples(t *testing.T) {
	var inserted []*domain.Todo
	repo := &mockRepo{}
	repo.countTodosFn = func(_ context.Context, completed *bool) (int, error) {
		n := 0
		for _, todo := range inserted {
			if completed == nil || todo.Completed == *completed {
				n++
			}
		}
		return n, nil
	}
	repo.createTodoFn = func(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
		inserted = append(inserted, todo)
		return todo, nil
	}
	svc := NewService(repo)

	samples := []SeedTodo{
		{Title: "new", Age: time.Minute},
		{Title: "old", Completed: true, Age: 48 * time.Hour},
	}
	result, err := svc.Seed(context.Background(), samples)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 1, result.Pending)

	require.Len(t, inserted, 2)
	assert.True(t, inserted[1].CreatedAt.Before(inserted[0].CreatedAt))
	for _, todo := range inserted {
		assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)
	}
}

func TestSeed_NonEmptyTableIsSkipped(t *testing.T) {
	svc := NewService(&mockRepo{
		countTodosFn: func(_ context.Context, completed *bool) (int, error) {
			if completed != nil {
				return 1, nil
			}
			return 3, nil
		},
	})

	result, err := svc.Seed(context.Background(), DefaultSeedTodos)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Zero(t, result.Inserted)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Pending)
}

func TestSeed_FailureRollsBack(t *testing.T) {
	insertErr := errors.New("insert failed")
	rolledBack := false
	repo := &mockRepo{
		countTodosFn: func(context.Context, *bool) (int, error) { return 0, nil },
	}
	repo.createTodoFn = func(context.Context, *domain.Todo) (*domain.Todo, error) { return nil, insertErr }
	repo.atomicFn = func(ctx context.Context, fn func(tx Repository) error) error {
		err := fn(repo)
		rolledBack = err != nil
		return err
	}
	svc := NewService(repo)

	_, err := svc.Seed(context.Background(), DefaultSeedTodos)
	assert.ErrorIs(t, err, insertErr)
	assert.True(t, rolledBack)
}

func TestDefaultSeedTodos_AreValid(t *testing.T) {
	for _, sample := range DefaultSeedTodos {
		_, err := domain.NewTitle(sample.Title)
		assert.NoError(t, err, sample.Title)
	}
}
