package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/persistence/compliance"
	"github.com/rezkam/todos/internal/infrastructure/persistence/sqlite"
)

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.NewInMemoryStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTodo(t *testing.T, title string) *domain.Todo {
	t.Helper()
	parsed, err := domain.NewTitle(title)
	require.NoError(t, err)
	return domain.NewTodo(parsed, domain.Now())
}

func TestSQLiteCompliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func(t *testing.T) todo.Repository {
		return setupStore(t)
	})
}

func TestStore_InMemoryStoresAreIsolated(t *testing.T) {
	a := setupStore(t)
	b := setupStore(t)
	ctx := context.Background()

	_, err := a.CreateTodo(ctx, newTodo(t, "only in a"))
	require.NoError(t, err)

	count, err := b.CountTodos(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_FileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	store, err := sqlite.NewStore(ctx, path)
	require.NoError(t, err)
	created, err := store.CreateTodo(ctx, newTodo(t, "persisted"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Migrations must be idempotent on an existing file.
	reopened, err := sqlite.NewStore(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	found, err := reopened.FindTodoByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parsed, _ := domain.NewTitle("concurrent")
			_, err := store.CreateTodo(ctx, domain.NewTodo(parsed, domain.Now()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	total, err := store.CountTodos(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, n, total)
}

func TestStore_DatabaseRejectsUpdatedBeforeCreated(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	now := domain.Now()
	_, err := store.CreateTodo(ctx, &domain.Todo{Title: "backwards", CreatedAt: now, UpdatedAt: now.Add(-time.Second)})
	assert.Error(t, err)
}
