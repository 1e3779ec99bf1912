package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"catalog-api/internal/apperrors"
)

// =============================================================================
// CUSTOM ERRORS
// =============================================================================
// Define custom errors that can be checked by the service layer
// This allows services to handle "not found" differently from database errors

// ErrNotFound indicates the requested resource doesn't exist
var ErrNotFound = errors.New("resource not found")

// PostgreSQL SQLSTATE codes we translate into ConflictError
const (
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgStringDataRightTrunc = "22001"
	pgUniqueViolation      = "23505"
)

// wrapPgError turns constraint violations into apperrors.ConflictError and
// wraps everything else with the operation name
func wrapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation, pgStringDataRightTrunc, pgUniqueViolation:
			return &apperrors.ConflictError{
				Constraint: pgErr.ConstraintName,
				Code:       pgErr.Code,
				Message:    pgErr.Message,
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOneRow reports an IncorrectResultSizeError when a statement that
// targets a single id touched any other number of rows
func expectOneRow(tag pgconn.CommandTag) error {
	if n := tag.RowsAffected(); n != 1 {
		return &apperrors.IncorrectResultSizeError{Expected: 1, Actual: n}
	}
	return nil
}
