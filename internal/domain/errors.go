package domain

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicate        = errors.New("resource already exists")
	ErrInvalidReference = errors.New("referenced resource does not exist")
)
