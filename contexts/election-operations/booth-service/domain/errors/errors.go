package errors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid booth input")
	ErrBoothNotFound        = errors.New("booth not found")
	ErrDuplicateBoothNumber = errors.New("booth number already registered")
)
