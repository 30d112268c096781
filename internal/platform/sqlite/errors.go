package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/tasks-api/internal/store"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintCode extracts the SQLite result code from err, or 0.
func constraintCode(err error) int {
	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	switch constraintCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	}
	return false
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	switch constraintCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
	}
	return false
}

// MapError translates driver errors into store sentinels, keeping the
// original error in the chain. notFound is used for sql.ErrNoRows and
// duplicate for uniqueness failures.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", duplicate, err)
	}
	switch constraintCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		sqlite3.SQLITE_CONSTRAINT_CHECK,
		sqlite3.SQLITE_CONSTRAINT_NOTNULL,
		sqlite3.SQLITE_CONSTRAINT:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}
