// Package store provides database access methods for all pressroom
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Unique constraint failures are surfaced as apperr conflicts
// naming the offending field; all timestamps are assigned by the
// database at write time.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"pressroom/internal/apperr"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// constraintFields maps unique constraint names from the schema to the
// input field a caller must change to resolve the conflict.
var constraintFields = map[string]string{
	"users_username_key":    "username",
	"users_email_key":       "email",
	"categories_slug_key":   "slug",
	"articles_slug_key":     "slug",
	"static_pages_slug_key": "slug",
}

// conflictError translates a unique violation into an apperr conflict.
// Other errors pass through unchanged.
func conflictError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		field = "slug"
	}
	return apperr.Conflict(field, field+" is already in use")
}
