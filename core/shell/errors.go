package shell

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrCommandNotFound is returned when no tier claims a command name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrProcessReplacementFailed is returned when a resolved file couldn't be
	// executed, for example because it isn't executable or isn't a program.
	ErrProcessReplacementFailed = errors.New("process replacement failed")

	// ErrChildWait is returned when waiting for a started child fails for a
	// reason other than a non-zero exit.
	ErrChildWait = errors.New("wait for child failed")

	// ErrFunctionDepth is returned when user functions nest too deeply.
	ErrFunctionDepth = errors.New("maximum function nesting level exceeded")
)

// NotFoundError reports a command that no tier could resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: '%s'", e.Name)
}

// Unwrap returns ErrCommandNotFound so callers can use errors.Is.
func (e *NotFoundError) Unwrap() error { return ErrCommandNotFound }

// ReplacementError reports an external program that couldn't be started.
type ReplacementError struct {
	Path string
	Err  error
}

func (e *ReplacementError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, reason(e.Err))
}

// Unwrap exposes both ErrProcessReplacementFailed and the OS error.
func (e *ReplacementError) Unwrap() []error {
	return []error{ErrProcessReplacementFailed, e.Err}
}

// reason strips the operation and path from OS errors, which would otherwise
// repeat the path.
func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
