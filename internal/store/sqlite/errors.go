package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	moderncsqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// isUniqueViolation recognizes a UNIQUE constraint failure from either
// registered driver.
func isUniqueViolation(err error) bool {
	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var moderncErr *moderncsqlite.Error
	if errors.As(err, &moderncErr) {
		return moderncErr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
