package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// ErrConstraint reports a foreign key or CHECK violation. The wrapping
// error names the violated constraint.
var ErrConstraint = errors.New("constraint violation")

// MapError translates database errors to domain errors: sql.ErrNoRows
// becomes notFoundErr, a unique violation becomes duplicateErr, and
// foreign key or CHECK violations wrap ErrConstraint. Other errors are
// returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUnique:
		return duplicateErr
	case codeForeignKey, codeCheck:
		return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
	}
	return err
}
