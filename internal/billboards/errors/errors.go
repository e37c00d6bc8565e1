package errors

import "errors"

var (
	ErrNotFound = errors.New("billboard not found")

	ErrInvalidID = errors.New("invalid billboard ID format")
)
