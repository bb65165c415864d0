package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// ErrNotFound is returned when no row matches the requested id
var ErrNotFound = errors.New("record not found")

// checkAffected turns a zero-row update or delete into ErrNotFound
func checkAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %s: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps other errors
func notFound(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", entity, id, err)
}

// closeRows closes a result set, logging the error like the rest of the repo does
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("error closing rows: %v", err)
	}
}
