package errs

import "errors"

var (
	// ErrInvalidInput indicates the caller supplied a disallowed value,
	// e.g. an empty habit name. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced habit does not exist in the
	// collection. Usually means the client holds a stale list.
	ErrNotFound = errors.New("not found")

	// ErrStorage indicates the backing store rejected or could not
	// complete an operation. State is left unchanged; the caller may
	// retry the whole operation.
	ErrStorage = errors.New("storage error")
)
