package shell

import (
	"fmt"
	"io"
	"sort"

	"github.com/pborman/getopt/v2"
)

// ShellBuiltin is a command implemented inside the shell process.
type ShellBuiltin interface {
	Main(e *Engine, args []string) int
}

type ShellBuiltinFunc func(e *Engine, args []string) int

func (f ShellBuiltinFunc) Main(e *Engine, args []string) int {
	return f(e, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinKind tells how a builtin takes its input.
type BuiltinKind int

const (
	// ArgsBuiltin only reads its argument vector.
	ArgsBuiltin BuiltinKind = iota
	// BlockBuiltin also consumes the raw input lines that follow its own.
	BlockBuiltin
)

func (k BuiltinKind) String() string {
	switch k {
	case ArgsBuiltin:
		return "args"
	case BlockBuiltin:
		return "block"
	default:
		return fmt.Sprintf("BuiltinKind(%d)", int(k))
	}
}

// Builtin describes a registered builtin.
type Builtin struct {
	Name  string
	Usage string
	Short string
	Kind  BuiltinKind
	Main  ShellBuiltin
}

// Invoke runs the builtin with the full argument vector, args[0] is the
// builtin's name.
func (b *Builtin) Invoke(e *Engine, args []string) int {
	return b.Main.Main(e, args)
}

// BuiltinRegistry maps command names to builtins. The set is fixed when the
// registry is built.
type BuiltinRegistry struct {
	builtins map[string]*Builtin
}

// NewBuiltinRegistry creates a registry holding builtins.
func NewBuiltinRegistry(builtins ...Builtin) *BuiltinRegistry {
	r := &BuiltinRegistry{builtins: make(map[string]*Builtin)}
	for _, b := range builtins {
		r.register(b)
	}
	return r
}

// register panics on an empty or duplicate name, both are programming errors.
func (r *BuiltinRegistry) register(b Builtin) {
	if b.Name == "" {
		panic("shell: cannot register builtin with empty name")
	}
	if b.Main == nil {
		panic(fmt.Sprintf("shell: builtin %q has no handler", b.Name))
	}
	if _, exists := r.builtins[b.Name]; exists {
		panic(fmt.Sprintf("shell: builtin %q already registered", b.Name))
	}
	r.builtins[b.Name] = &b
}

// Lookup retrieves a builtin by name.
func (r *BuiltinRegistry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Names returns the names of all builtins in sorted order.
func (r *BuiltinRegistry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimpleCommand handles option parsing and help for builtins.
type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args and, if successful, calls the callback with the remaining
// operands.
func (s *SimpleCommand) Run(e *Engine, args []string, callback func(operands []string) int) int {
	opts := s.Flags()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintf(e.Stderr, "%s: %s\n\n", args[0], err)
		s.PrintHelp(e.Stderr)
		return 2
	}

	if *showHelp {
		s.PrintHelp(e.Stdout)
		return 0
	}

	return callback(opts.Args())
}
