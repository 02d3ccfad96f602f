package repository

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// SQLSTATE codes for objects the connected schema does not have.
const (
	codeUndefinedFunction = "42883"
	codeUndefinedTable    = "42P01"
	codeUndefinedColumn   = "42703"
	codeUniqueViolation   = "23505"
)

// UnsupportedError reports that the database lacks the function or relation
// a query relies on. Callers that have an alternative query path check for
// it with errors.As instead of inspecting the message.
type UnsupportedError struct {
	Object string
	Code   string
	Err    error
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not available (sqlstate %s)", e.Object, e.Code)
}

func (e *UnsupportedError) Unwrap() error { return e.Err }

// Unsupported marks the error as a missing-capability signal.
func (e *UnsupportedError) Unsupported() bool { return true }

// translate maps driver errors onto repository errors. object names the
// function or table the query depends on.
func translate(err error, object string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedFunction, codeUndefinedTable, codeUndefinedColumn:
			return &UnsupportedError{Object: object, Code: pgErr.Code, Err: err}
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		}
	}
	return err
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
