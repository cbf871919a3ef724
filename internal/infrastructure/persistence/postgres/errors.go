package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rezkam/todos/internal/domain"
)

const constraintTitleNotEmpty = "todos_title_not_empty"

// translateError maps PostgreSQL errors that correspond to domain rules onto
// domain errors. Anything else is returned unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.CheckViolation:
		if pgErr.ConstraintName == constraintTitleNotEmpty {
			return fmt.Errorf("%w: %w", domain.ErrTitleRequired, err)
		}
	case pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: %w", domain.ErrTitleTooLong, err)
	}

	return err
}
