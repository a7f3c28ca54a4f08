package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// errNotFound is returned by the read-back lookups the store tests use to
// confirm a row was written. The pipeline itself never reads contacts.
var errNotFound = errors.New("not found")

// notFound maps driver "no rows" errors to errNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return errNotFound
	}
	return err
}
