package shell

import (
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// SearchPath resolves command names to files in a list of directories.
//
// Directories are consulted from the last listed to the first and every match
// replaces the one before it, so the earliest listed directory holding the
// name decides the result. Empty entries and directories that can't be listed
// are skipped.
type SearchPath struct {
	fs   afero.Fs
	dirs []string

	// RequireExecutable makes resolution skip directories and files with no
	// execute bit set. By default the presence of the name is enough and the
	// OS decides whether it can be run.
	RequireExecutable bool
}

// NewSearchPath creates a resolver over dirs, read through fsys.
func NewSearchPath(fsys afero.Fs, dirs []string) *SearchPath {
	return &SearchPath{
		fs:   fsys,
		dirs: append([]string(nil), dirs...),
	}
}

// Dirs returns the directories in the order they were given.
func (sp *SearchPath) Dirs() []string {
	return append([]string(nil), sp.dirs...)
}

// Resolve returns the path of the file that name refers to. If name contains
// a slash it is used directly and the directories aren't consulted.
func (sp *SearchPath) Resolve(name string) (string, bool) {
	matches := sp.resolve(name)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1], true
}

// ResolveAll returns every file name could refer to, the one Resolve picks
// first followed by the ones it shadows.
func (sp *SearchPath) ResolveAll(name string) []string {
	matches := sp.resolve(name)
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches
}

// resolve returns the matches in scan order, the last one wins.
func (sp *SearchPath) resolve(name string) []string {
	if name == "" {
		return nil
	}

	if strings.Contains(name, "/") {
		if sp.qualifies(name) {
			return []string{name}
		}
		return nil
	}

	var out []string
	for i := len(sp.dirs) - 1; i >= 0; i-- {
		dir := sp.dirs[i]
		if dir == "" || !sp.contains(dir, name) {
			continue
		}

		candidate := strings.TrimSuffix(dir, "/") + "/" + name
		if sp.RequireExecutable && !sp.qualifies(candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// contains reports whether the listing of dir has an entry called name.
func (sp *SearchPath) contains(dir, name string) bool {
	entries, err := afero.ReadDir(sp.fs, dir)
	if err != nil {
		// Missing or unreadable directories are ignored.
		return false
	}

	for _, entry := range entries {
		if entry.Name() == name {
			return true
		}
	}
	return false
}

// qualifies checks a candidate file exists and, if required, is executable.
func (sp *SearchPath) qualifies(path string) bool {
	info, err := sp.fs.Stat(path)
	if err != nil {
		return false
	}
	if !sp.RequireExecutable {
		return true
	}
	return isExecutable(info)
}

func isExecutable(info fs.FileInfo) bool {
	return !info.IsDir() && info.Mode()&0o111 != 0
}
