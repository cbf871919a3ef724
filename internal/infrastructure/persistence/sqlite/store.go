package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rezkam/todos/internal/application/todo"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite implementation of todo.Repository.
type Store struct {
	db   *sql.DB
	conn dbtx
	inTx bool
}

var _ todo.Repository = (*Store)(nil)

// NewStoreFromDB wraps an already migrated database.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: db, conn: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// executeInTransaction runs fn with a Store bound to a new transaction.
// A store already inside a transaction reuses it.
func (s *Store) executeInTransaction(ctx context.Context, operationName string, fn func(txStore *Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			slog.ErrorContext(ctx, "transaction failed, rolling back",
				"operation", operationName,
				"error", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("transaction failed: %w (rollback error: %v)", err, rbErr)
			}
			return
		}
		if err = tx.Commit(); err != nil {
			slog.ErrorContext(ctx, "transaction commit failed",
				"operation", operationName,
				"error", err)
		}
	}()

	err = fn(&Store{db: s.db, conn: tx, inTx: true})
	return
}

// Atomic executes fn within a database transaction.
func (s *Store) Atomic(ctx context.Context, fn func(repo todo.Repository) error) error {
	return s.executeInTransaction(ctx, "atomic", func(txStore *Store) error {
		return fn(txStore)
	})
}
