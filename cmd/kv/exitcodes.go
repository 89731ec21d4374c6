package main

import (
	"errors"

	"github.com/matsen/kv/internal/kvstore"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (unreadable config, unknown backend)
	ExitCorrupt     = 3 // Database is not an object of string values
	ExitNotFound    = 4 // Key not found on get
)

// exitCodeFor maps a store error to its exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, kvstore.ErrCorrupt):
		return ExitCorrupt
	case errors.Is(err, kvstore.ErrKeyNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
