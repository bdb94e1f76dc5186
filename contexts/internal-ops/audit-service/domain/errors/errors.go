package errors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid audit input")
	ErrEntryNotFound = errors.New("audit entry not found")
)
