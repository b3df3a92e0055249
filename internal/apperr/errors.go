package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
	ErrNoState  = errors.New("no state present")
	ErrLastPage = errors.New("last page cannot be removed")
)
