// Package commits provides sentinel errors for repository access and
// iteration. All errors can be checked using errors.Is() for programmatic
// handling.
package commits

import (
	"errors"
	"fmt"
)

// ErrNotRepository is returned when the given path does not contain a valid
// git repository.
var ErrNotRepository = errors.New("not a git repository")

// ErrInvalidOptions is returned when Options are missing required fields or
// contain invalid values.
var ErrInvalidOptions = errors.New("invalid options")

// ErrInvalidRef is returned when a reference name or revision specification
// is malformed or empty.
var ErrInvalidRef = errors.New("invalid reference")

// ErrResolveFailed is returned when a revision specification cannot be
// resolved to a valid commit hash (e.g., branch/tag doesn't exist, invalid SHA).
var ErrResolveFailed = errors.New("cannot resolve revision")

// ErrStop can be returned from a ForEach or WalkCommits callback to end the
// iteration early without an error. It is never surfaced to the caller.
var ErrStop = errors.New("stop iteration")

// WrapError wraps an error with additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapErrorf wraps an error with formatted additional context while preserving
// the ability to check against sentinel errors using errors.Is().
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
