// Package pgerr classifies PostgreSQL driver errors into the domain error kinds.
package pgerr

import (
	"errors"

	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE raised for unique and partial unique indexes.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err carries SQLSTATE 23505. When constraint is not
// empty the violated constraint name must match as well.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Storage wraps a driver failure as errs.StorageError. Errors that already carry a
// domain kind pass through unchanged.
func Storage(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrInvalidTransition) ||
		errs.IsValidation(err) {
		return err
	}
	return errs.NewStorageError(operation, err)
}
