package domain

import "errors"

// Domain errors. Callers compare with errors.Is; the HTTP layer maps each one to a
// distinct status and error code.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrAlreadyLiked    = errors.New("already liked")
	ErrNotLiked        = errors.New("not liked")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrInvalidMedia    = errors.New("a story can carry an image or a video, not both")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not allowed to act on this resource")
)
