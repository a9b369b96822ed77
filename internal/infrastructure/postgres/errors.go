package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeNumericOutOfRange         = "22003"
	codeInvalidTextRepresentation = "22P02"
	codeForeignKeyViolation       = "23503"
	codeUniqueViolation           = "23505"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isBadReference is true when the id could never match a row: malformed
// uuid text or a dangling foreign key.
func isBadReference(err error) bool {
	switch pgCode(err) {
	case codeInvalidTextRepresentation, codeForeignKeyViolation:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isNumericOverflow is true when a money value no longer fits its column.
func isNumericOverflow(err error) bool {
	return pgCode(err) == codeNumericOutOfRange
}
