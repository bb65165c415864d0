package worker

import "errors"

var (
	ErrInvalidWorkerID = errors.New("invalid worker ID")
	ErrReservedField   = errors.New("extra field name is reserved")
)
