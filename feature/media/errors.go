package media

import "errors"

var (
	// ErrNotFound means no media row has the requested id.
	ErrNotFound = errors.New("media not found")
	// ErrInvalidInput means the request was malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict means the target of a move is already taken.
	ErrConflict = errors.New("media already exists")
)
