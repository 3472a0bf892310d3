//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package terminal

func cbreak(int) (RestoreFunc, error) {
	return noRestore, ErrUnsupported
}
