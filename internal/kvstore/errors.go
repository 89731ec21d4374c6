package kvstore

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is matched by every *CorruptError.
	ErrCorrupt = errors.New("corrupt database")

	// ErrKeyNotFound is returned by Get when the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidUTF8 is returned by Set when the key or value is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("not valid UTF-8")

	// ErrNothingToDelete is returned by Delete when neither a key nor a value is given.
	ErrNothingToDelete = errors.New("delete requires a key or a value")
)

// CorruptError reports persisted data that is not an object of string values.
type CorruptError struct {
	Path   string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCorrupt, e.Path, e.Reason)
}

// Unwrap lets errors.Is(err, ErrCorrupt) match.
func (e *CorruptError) Unwrap() error {
	return ErrCorrupt
}
