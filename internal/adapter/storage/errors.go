// internal/adapter/storage/errors.go

package storage

import (
	"errors"

	"github.com/jackc/pgconn"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Postgres error codes for missing relations and columns. These usually mean
// a migration has not been applied and the raw message is actionable for an
// admin, so callers surface it verbatim.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
)

// MissingSchemaMessage extracts the backend error text when a query failed
// because a table or column is missing. This is the one error class whose
// raw text is meant to reach an admin user.
func MissingSchemaMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeUndefinedTable || pgErr.Code == codeUndefinedColumn {
			return pgErr.Message, true
		}
	}
	return "", false
}
