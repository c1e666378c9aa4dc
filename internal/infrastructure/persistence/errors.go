package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Both driver error types are handled: pgx (used by GORM) and
// lib/pq (used by the migration tooling and some tests).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
