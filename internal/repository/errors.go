package repository

import "errors"

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("not found")
