package models

import "errors"

var (
	// ErrInvalidStatus is returned when a status string matches no known status
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSortKey is returned when a sort key is not a sortable field
	ErrInvalidSortKey = errors.New("invalid sort key")
)
