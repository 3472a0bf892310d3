package shell

import (
	"errors"
	"sort"
)

// ErrDefinitionClosed is returned when appending to a sealed definition.
var ErrDefinitionClosed = errors.New("function definition already closed")

// FunctionStore holds user-defined functions: named, ordered lists of
// commands that are dispatched again when the function is called.
//
// Definitions only grow. Defining a name that already exists appends to the
// existing body instead of replacing it.
type FunctionStore struct {
	functions map[string][]Command
}

// NewFunctionStore creates an empty store.
func NewFunctionStore() *FunctionStore {
	return &FunctionStore{
		functions: make(map[string][]Command),
	}
}

// Begin opens a definition block for name. The function exists from this
// point on, even if nothing is appended.
func (fs *FunctionStore) Begin(name string) *Definition {
	if _, ok := fs.functions[name]; !ok {
		fs.functions[name] = []Command{}
	}
	return &Definition{store: fs, name: name}
}

// Define appends a complete block of commands to name.
func (fs *FunctionStore) Define(name string, body ...Command) {
	def := fs.Begin(name)
	defer def.End()

	for _, cmd := range body {
		// Can't fail, the definition is open.
		_ = def.Append(cmd)
	}
}

// Lookup returns a copy of the body of the named function.
func (fs *FunctionStore) Lookup(name string) ([]Command, bool) {
	body, ok := fs.functions[name]
	if !ok {
		return nil, false
	}
	return append([]Command{}, body...), true
}

// Names returns the defined function names in sorted order.
func (fs *FunctionStore) Names() []string {
	names := make([]string, 0, len(fs.functions))
	for name := range fs.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition is an open def block.
type Definition struct {
	store  *FunctionStore
	name   string
	sealed bool
}

// Name of the function being defined.
func (d *Definition) Name() string {
	return d.name
}

// Append adds a command to the end of the function body.
func (d *Definition) Append(cmd Command) error {
	if d.sealed {
		return ErrDefinitionClosed
	}
	d.store.functions[d.name] = append(d.store.functions[d.name], cmd)
	return nil
}

// End seals the block, it's safe to call more than once.
func (d *Definition) End() {
	d.sealed = true
}
