package sqlite

import (
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/rezkam/todos/internal/domain"
)

// translateError maps CHECK constraint violations on todos.title to domain
// validation errors. Other errors are returned unchanged.
func translateError(err error) error {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code() != sqlite3.SQLITE_CONSTRAINT_CHECK {
		return err
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "todos_title_not_empty"):
		return domain.ErrTitleRequired
	case strings.Contains(msg, "todos_title_length"):
		return domain.ErrTitleTooLong
	}
	return err
}
