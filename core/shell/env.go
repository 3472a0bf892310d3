package shell

import (
	"sort"
	"strings"
)

const (
	EnvHome = "HOME"
	EnvPath = "PATH"
)

// Environ is a read-only snapshot of environment variables taken when the
// shell starts. Child processes receive it as their environment.
type Environ struct {
	env map[string]string
}

// NewEnviron creates a snapshot from a list of "key=value" strings such as
// os.Environ(). Later duplicates win.
func NewEnviron(environ []string) Environ {
	out := Environ{env: make(map[string]string, len(environ))}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.env[key] = value
	}

	return out
}

// LookupEnv retrieves the value of the environment variable named by the key.
func (e Environ) LookupEnv(key string) (string, bool) {
	val, ok := e.env[key]
	return val, ok
}

// Getenv retrieves the value of the environment variable named by the key.
// It returns the empty string if the variable is not present.
func (e Environ) Getenv(key string) string {
	val, _ := e.LookupEnv(key)
	return val
}

// Environ returns a copy of the environment in the form "key=value", sorted
// by key.
func (e Environ) Environ() []string {
	keys := make([]string, 0, len(e.env))
	for k := range e.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+e.env[k])
	}
	return env
}

// SearchPath returns the directories listed in PATH in the order they appear.
func (e Environ) SearchPath() []string {
	path := e.Getenv(EnvPath)
	if path == "" {
		return nil
	}
	return strings.Split(path, ":")
}
