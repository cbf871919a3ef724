// Package compliance holds the behavioral contract every todo.Repository
// implementation must satisfy. Backends run it from their own tests.
package compliance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/ptr"
)

// missingID is never assigned in a freshly emptied table.
const missingID int64 = 987654321

// largeIDCount exceeds SQLite's default limit of 32766 bound parameters.
const largeIDCount = 40000

// RunRepositoryComplianceTest runs the standard repository tests.
// setup must return an empty repository; it is called once per subtest.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) todo.Repository) {
	t.Run("CreateThenFindReturnsIdenticalRecord", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "Buy milk"))
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.False(t, created.Completed)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		assert.Equal(t, time.UTC, created.CreatedAt.Location())

		found, err := repo.FindTodoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("TitlesAreStoredVerbatim", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		for _, title := range []string{"  padded  ", "   ", "tab\tand\nnewline"} {
			created, err := repo.CreateTodo(ctx, newTodo(t, title))
			require.NoError(t, err)

			found, err := repo.FindTodoByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, title, found.Title)
		}
	})

	t.Run("IDsAreNeverReused", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		first, err := repo.CreateTodo(ctx, newTodo(t, "first"))
		require.NoError(t, err)
		require.NoError(t, repo.DeleteTodo(ctx, first.ID))

		second, err := repo.CreateTodo(ctx, newTodo(t, "second"))
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("FindTodoByIDNotFound", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.FindTodoByID(context.Background(), missingID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("FindTodosFilterAndOrder", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		base := domain.Now().Add(-time.Hour)
		for i, title := range []string{"oldest", "middle", "newest"} {
			at := base.Add(time.Duration(i) * time.Minute)
			_, err := repo.CreateTodo(ctx, &domain.Todo{Title: title, Completed: i%2 == 0, CreatedAt: at, UpdatedAt: at})
			require.NoError(t, err)
		}

		tests := []struct {
			name   string
			params domain.ListTodosParams
			want   []string
		}{
			{name: "all newest first", params: domain.ListTodosParams{}, want: []string{"newest", "middle", "oldest"}},
			{name: "completed only", params: domain.ListTodosParams{Completed: ptr.To(true)}, want: []string{"newest", "oldest"}},
			{name: "pending only", params: domain.ListTodosParams{Completed: ptr.To(false)}, want: []string{"middle"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				todos, err := repo.FindTodos(ctx, tt.params)
				require.NoError(t, err)
				assert.Equal(t, tt.want, titles(todos))
			})
		}
	})

	t.Run("EqualTimestampsOrderByIDDescending", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		now := domain.Now()
		a, err := repo.CreateTodo(ctx, &domain.Todo{Title: "a", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		b, err := repo.CreateTodo(ctx, &domain.Todo{Title: "b", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)

		todos, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, b.ID, todos[0].ID)
		assert.Equal(t, a.ID, todos[1].ID)
	})

	t.Run("EmptyListingIsNotNil", func(t *testing.T) {
		repo := setup(t)

		todos, err := repo.FindTodos(context.Background(), domain.ListTodosParams{})
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("UpdateTodoOnlyTouchesGivenFields", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "Keep me"))
		require.NoError(t, err)

		stamp := created.CreatedAt.Add(time.Second)
		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID, Completed: ptr.To(true)}, stamp)
		require.NoError(t, err)
		assert.Equal(t, "Keep me", updated.Title)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, stamp, updated.UpdatedAt)

		renamed, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID, Title: ptr.To("Renamed")}, stamp.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, "Renamed", renamed.Title)
		assert.True(t, renamed.Completed)

		found, err := repo.FindTodoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, renamed, found)
	})

	t.Run("UpdateTodoWithoutFieldsOnlyStamps", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "touch"))
		require.NoError(t, err)

		stamp := created.CreatedAt.Add(time.Minute)
		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID}, stamp)
		require.NoError(t, err)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Completed, updated.Completed)
		assert.Equal(t, stamp, updated.UpdatedAt)
	})

	t.Run("UpdateTodoNeverStampsBeforeCreation", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "clock skew"))
		require.NoError(t, err)

		updated, err := repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: created.ID}, created.CreatedAt.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, created.CreatedAt, updated.UpdatedAt)
	})

	t.Run("UpdateTodoNotFound", func(t *testing.T) {
		repo := setup(t)

		_, err := repo.UpdateTodo(context.Background(), domain.UpdateTodoParams{ID: missingID}, domain.Now())
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("DeleteTwiceIsNotFound", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "Delete me"))
		require.NoError(t, err)

		require.NoError(t, repo.DeleteTodo(ctx, created.ID))
		assert.ErrorIs(t, repo.DeleteTodo(ctx, created.ID), domain.ErrTodoNotFound)

		_, err = repo.FindTodoByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})

	t.Run("BulkUpdateSkipsMissingIDs", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		a, err := repo.CreateTodo(ctx, newTodo(t, "a"))
		require.NoError(t, err)
		b, err := repo.CreateTodo(ctx, newTodo(t, "b"))
		require.NoError(t, err)
		untouched, err := repo.CreateTodo(ctx, newTodo(t, "c"))
		require.NoError(t, err)

		stamp := domain.Now().Add(time.Second)
		count, err := repo.BulkUpdateTodos(ctx, domain.BulkUpdateParams{IDs: []int64{a.ID, b.ID, missingID}, Completed: ptr.To(true)}, stamp)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		for _, id := range []int64{a.ID, b.ID} {
			got, err := repo.FindTodoByID(ctx, id)
			require.NoError(t, err)
			assert.True(t, got.Completed)
			assert.Equal(t, stamp, got.UpdatedAt)
		}

		got, err := repo.FindTodoByID(ctx, untouched.ID)
		require.NoError(t, err)
		assert.Equal(t, untouched, got)
	})

	t.Run("BulkUpdateLargeIDList", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		a, err := repo.CreateTodo(ctx, newTodo(t, "a"))
		require.NoError(t, err)
		b, err := repo.CreateTodo(ctx, newTodo(t, "b"))
		require.NoError(t, err)

		ids := make([]int64, 0, largeIDCount+2)
		for i := range int64(largeIDCount) {
			ids = append(ids, missingID+i)
		}
		ids = append(ids, a.ID, b.ID)

		count, err := repo.BulkUpdateTodos(ctx, domain.BulkUpdateParams{IDs: ids, Completed: ptr.To(true)}, domain.Now())
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		done, err := repo.CountTodos(ctx, ptr.To(true))
		require.NoError(t, err)
		assert.Equal(t, 2, done)
	})

	t.Run("BulkUpdateEmptyIDs", func(t *testing.T) {
		repo := setup(t)

		count, err := repo.BulkUpdateTodos(context.Background(), domain.BulkUpdateParams{IDs: []int64{}}, domain.Now())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("BulkUpdateWithoutCompletedOnlyStamps", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		a, err := repo.CreateTodo(ctx, newTodo(t, "a"))
		require.NoError(t, err)

		stamp := a.CreatedAt.Add(time.Minute)
		count, err := repo.BulkUpdateTodos(ctx, domain.BulkUpdateParams{IDs: []int64{a.ID}}, stamp)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := repo.FindTodoByID(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, got.Completed)
		assert.Equal(t, stamp, got.UpdatedAt)
	})

	t.Run("CountTodos", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		for _, title := range []string{"a", "b", "c"} {
			_, err := repo.CreateTodo(ctx, newTodo(t, title))
			require.NoError(t, err)
		}
		todos, err := repo.FindTodos(ctx, domain.ListTodosParams{})
		require.NoError(t, err)
		_, err = repo.UpdateTodo(ctx, domain.UpdateTodoParams{ID: todos[0].ID, Completed: ptr.To(true)}, domain.Now())
		require.NoError(t, err)

		total, err := repo.CountTodos(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		done, err := repo.CountTodos(ctx, ptr.To(true))
		require.NoError(t, err)
		assert.Equal(t, 1, done)

		pending, err := repo.CountTodos(ctx, ptr.To(false))
		require.NoError(t, err)
		assert.Equal(t, 2, pending)
	})

	t.Run("AtomicRollsBackOnError", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, newTodo(t, "original"))
		require.NoError(t, err)

		boom := errors.New("boom")
		err = repo.Atomic(ctx, func(tx todo.Repository) error {
			if _, err := tx.BulkUpdateTodos(ctx, domain.BulkUpdateParams{IDs: []int64{created.ID}, Completed: ptr.To(true)}, domain.Now()); err != nil {
				return err
			}
			if _, err := tx.CreateTodo(ctx, newTodo(t, "inserted")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := repo.FindTodoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		total, err := repo.CountTodos(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("AtomicCommits", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		err := repo.Atomic(ctx, func(tx todo.Repository) error {
			for _, title := range []string{"one", "two"} {
				if _, err := tx.CreateTodo(ctx, newTodo(t, title)); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		total, err := repo.CountTodos(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("CheckConstraintsMapToDomainErrors", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()
		now := domain.Now()

		_, err := repo.CreateTodo(ctx, &domain.Todo{Title: "", CreatedAt: now, UpdatedAt: now})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)

		_, err = repo.CreateTodo(ctx, &domain.Todo{Title: strings.Repeat("x", domain.MaxTitleLength+1), CreatedAt: now, UpdatedAt: now})
		assert.ErrorIs(t, err, domain.ErrTitleTooLong)

		_, err = repo.CreateTodo(ctx, &domain.Todo{Title: strings.Repeat("é", domain.MaxTitleLength), CreatedAt: now, UpdatedAt: now})
		assert.NoError(t, err)

		total, err := repo.CountTodos(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})
}

func newTodo(t *testing.T, title string) *domain.Todo {
	t.Helper()
	parsed, err := domain.NewTitle(title)
	require.NoError(t, err)
	return domain.NewTodo(parsed, domain.Now())
}

func titles(todos []*domain.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, td := range todos {
		out = append(out, td.Title)
	}
	return out
}
