package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE for a unique-constraint conflict.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint conflict.
// Stores use it to translate storage-level integrity violations into the
// domain taxonomy at the point of write.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName extracts the violated constraint's name, empty when the
// error is not a pg constraint violation.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
