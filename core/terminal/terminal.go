// Package terminal switches an interactive terminal into cbreak mode: input
// is delivered a byte at a time without echo, but signals still work.
package terminal

import (
	"errors"

	"github.com/mattn/go-isatty"
)

// ErrUnsupported is returned on platforms without termios.
var ErrUnsupported = errors.New("terminal: cbreak mode is not supported on this platform")

// RestoreFunc puts the terminal back the way it was found.
type RestoreFunc func() error

func noRestore() error { return nil }

// Cbreak puts the terminal on fd into cbreak mode. If fd isn't a terminal
// nothing is changed and the returned RestoreFunc does nothing.
func Cbreak(fd uintptr) (RestoreFunc, error) {
	if !isatty.IsTerminal(fd) {
		return noRestore, nil
	}
	return cbreak(int(fd))
}
