//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func cbreak(fd int) (RestoreFunc, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return noRestore, fmt.Errorf("terminal: get attributes: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ECHO | unix.ICANON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &raw); err != nil {
		return noRestore, fmt.Errorf("terminal: set attributes: %w", err)
	}

	return func() error {
		if err := unix.IoctlSetTermios(fd, ioctlSetTermiosDrain, saved); err != nil {
			return fmt.Errorf("terminal: restore attributes: %w", err)
		}
		return nil
	}, nil
}
