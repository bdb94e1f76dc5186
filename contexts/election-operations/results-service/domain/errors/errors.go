package errors

import "errors"

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrUnknownFormat    = errors.New("unknown export format")
)
