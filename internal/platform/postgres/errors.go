package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgreSQL SQLSTATE codes translated by this package.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError translates driver errors into store sentinels, keeping the
// original error in the chain. notFound is used for sql.ErrNoRows and
// duplicate for unique violations; errors without a mapping are returned as is.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", duplicate, err)
	case foreignKeyViolationCode:
		return fmt.Errorf("%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case checkViolationCode:
		return fmt.Errorf("%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: not null violation (%s): %v",
			store.ErrInvalidEntity, pgErr.ColumnName, err)
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
