package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKeyViolation is returned when a write violates a foreign key
	// constraint, e.g. hard-deleting a menu item still referenced by order items.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")

	// ErrTimeout is returned when a statement exceeds the pool's statement timeout.
	ErrTimeout = errors.New("database operation timed out")
)

// Postgres error codes consulted by classifyError.
const (
	pqCodeUniqueViolation     = "23505"
	pqCodeForeignKeyViolation = "23503"
	pqCodeQueryCanceled       = "57014"
	pqCodeInvalidTextRep      = "22P02"
)

// classifyError maps a driver error onto the repository error taxonomy so
// callers never string-match error text.
func classifyError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqCodeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, op)
		case pqCodeForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, op)
		case pqCodeQueryCanceled:
			return fmt.Errorf("%w: %s", ErrTimeout, op)
		case pqCodeInvalidTextRep:
			// A malformed uuid in a lookup means the record cannot exist,
			// not that the database failed.
			return fmt.Errorf("%w: %s", ErrNotFound, op)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// SQLExecutor defines an interface that can be satisfied by *sql.DB or *sql.Tx.
// This allows repository methods to be used within transactions or with a
// direct DB connection.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}
