// Package persistence selects the todo.Repository backend named by configuration.
package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/todos/internal/infrastructure/persistence/sqlite"
)

// Store is a todo repository that owns a database connection.
type Store interface {
	todo.Repository
	io.Closer
}

// Open connects to the configured database and applies migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.ConnectionString(),
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		store, err := sqlite.NewStore(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.Driver)
	}
}
