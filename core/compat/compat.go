// Package compat checks the environment bananashell runs in.
package compat

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/hashicorp/go-version"
)

// MinimumRuntime is the oldest Go runtime the shell is tested against.
const MinimumRuntime = "1.21"

// ErrRuntimeUnsupported is returned when the runtime is older than required.
var ErrRuntimeUnsupported = errors.New("unsupported runtime")

// CheckRuntime returns an error wrapping ErrRuntimeUnsupported if the running
// Go runtime is older than minimum.
func CheckRuntime(minimum string) error {
	return checkVersion(runtime.Version(), minimum)
}

func checkVersion(current, minimum string) error {
	want, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", minimum, err)
	}

	// Development builds report things like "devel go1.23-abcdef", trust them.
	if strings.HasPrefix(current, "devel") {
		return nil
	}

	raw := strings.TrimPrefix(current, "go")
	// Drop experiment suffixes such as "1.22.1 X:rangefunc".
	raw, _, _ = strings.Cut(raw, " ")

	got, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("can't parse runtime version %q: %w", current, err)
	}

	if got.LessThan(want) {
		return fmt.Errorf("%w: running %s, need go%s or newer", ErrRuntimeUnsupported, current, want)
	}
	return nil
}
