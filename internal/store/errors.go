package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"elvcatalog/internal/models"
)

// PostgreSQL error codes the stores translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeErr wraps an insert/update failure, surfacing unique violations as
// dup.
func writeErr(op string, err error, dup error) error {
	if pgCode(err) == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, dup)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteErr wraps a delete failure, surfacing restricting foreign keys as
// models.ErrInUse.
func deleteErr(op string, err error) error {
	if pgCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("%s: %w", op, models.ErrInUse)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affectedOne maps a zero-row update or delete to models.ErrNotFound.
func affectedOne(op string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
