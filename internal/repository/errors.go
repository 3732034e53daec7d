// Package repository persists users and bookings.  The SQL repositories
// work against MySQL and SQLite with the same queries; MemoryStore keeps
// everything in process for local runs and tests.  The sentinel values
// below let the service layer distinguish failure scenarios without
// knowing which engine produced them.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a row with the requested key does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert violates the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a unique constraint violation
// from either supported engine.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
