package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for the constraints this schema declares.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
)

// Violation is the constraint breach found in a driver error.
type Violation struct {
	Code       string
	Constraint string
	Detail     string
}

// AsViolation extracts an integrity-constraint violation (SQLSTATE class 23)
// from err.
func AsViolation(err error) (Violation, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Violation{}, false
	}
	if len(pgErr.Code) != 5 || pgErr.Code[:2] != "23" {
		return Violation{}, false
	}
	return Violation{Code: pgErr.Code, Constraint: pgErr.ConstraintName, Detail: pgErr.Detail}, true
}

func IsUniqueViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeCheckViolation
}

func IsNotNullViolation(err error) bool {
	v, ok := AsViolation(err)
	return ok && v.Code == CodeNotNullViolation
}
