package shell

import (
	"strings"
	"unicode"
)

// Command is a single parsed input line: a name and its argument vector.
// Args[0] is always Name.
type Command struct {
	Name string
	Args []string
}

// NewCommand creates a command from an argument vector, the first element is
// used as the name. The slice is copied.
func NewCommand(args ...string) Command {
	argv := make([]string, len(args))
	copy(argv, args)

	var name string
	if len(argv) > 0 {
		name = argv[0]
	}
	return Command{Name: name, Args: argv}
}

// String returns the command as it would be typed.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Parse converts a raw input line into a command. Control characters are
// removed, everything after the first newline is discarded and the rest is
// split on spaces. There is no quoting, escaping or expansion. Runs of spaces
// don't produce empty arguments.
//
// ok is false if the line holds no command.
func Parse(line string) (cmd Command, ok bool) {
	var tokens []string
	for _, tok := range split(line) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return fromTokens(tokens)
}

// ParseKeepEmpty is like Parse but passes the empty arguments produced by
// consecutive spaces through to the command. A line starting with a space has
// an empty name and holds no command.
func ParseKeepEmpty(line string) (cmd Command, ok bool) {
	return fromTokens(split(line))
}

func fromTokens(tokens []string) (Command, bool) {
	if len(tokens) == 0 || tokens[0] == "" {
		return Command{}, false
	}
	return Command{Name: tokens[0], Args: tokens}, true
}

func split(line string) []string {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = sanitize(line)
	if line == "" {
		return nil
	}
	return strings.Split(line, " ")
}

// sanitize strips tabs, carriage returns and other control characters.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
