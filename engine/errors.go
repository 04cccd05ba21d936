package engine

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is returned by commands reserved for future extension
// (MERGE, DELETE), matching spec.md §7's NotImplemented taxonomy entry.
var ErrNotImplemented = errors.New("engine: command not implemented")

// ErrUnknownCommand is the sentinel Dispatch wraps (via wrapf, %w) into
// the error it returns when the command token names neither a known nor
// a reserved command; callers can match it with errors.Is.
var ErrUnknownCommand = errors.New("engine: unknown command")

// wrapf is a small fmt.Errorf("...: %w", err) helper used at Dispatch's
// unknown-command call site, the same wrap-with-context style the
// teacher this engine is adapted from applies at its own storage and
// decode error sites.
func wrapf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
