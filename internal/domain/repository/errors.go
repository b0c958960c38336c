package repository

import "errors"

// Implementations translate driver errors into these so that services never
// depend on a particular database.
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("unique constraint violated")
	ErrForeignKey = errors.New("foreign key constraint violated")
)
