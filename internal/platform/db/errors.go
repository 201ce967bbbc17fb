package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeInvalidDatetime     = "22007"
)

// Querier is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// ReadError maps a single-row read failure. resource names the entity in the
// not-found message ("Patient not found").
func ReadError(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return err
}

// WriteError maps constraint violations raised by INSERT and UPDATE.
// uniqueMessages maps unique constraint names to the conflict message
// reported for them.
func WriteError(err error, resource string, uniqueMessages map[string]string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		if msg, ok := uniqueMessages[pgErr.ConstraintName]; ok {
			return apperr.Conflict("%s", msg)
		}
		return apperr.Conflict("%s already exists", resource)
	case codeForeignKeyViolation:
		return apperr.Validation("invalid reference: %s", referenceDetail(pgErr))
	case codeNotNullViolation:
		return apperr.Validation("%s is required", pgErr.ColumnName)
	case codeCheckViolation, codeInvalidDatetime:
		return apperr.Validation("invalid %s: %s", resource, pgErr.Message)
	}
	return err
}

// DeleteError maps a foreign key violation on DELETE to a conflict: the row is
// still referenced elsewhere.
func DeleteError(err error, resource string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return apperr.Conflict("%s is still referenced by other records", resource)
	}
	return err
}

func referenceDetail(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	return pgErr.ConstraintName
}
