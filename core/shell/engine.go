package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/josephlewis42/bananashell/core/linesource"
	"github.com/spf13/afero"
)

// DefaultMaxFunctionDepth limits how deeply functions may call functions.
const DefaultMaxFunctionDepth = 64

// Tier is the kind of command a name resolved to.
type Tier int

const (
	TierNotFound Tier = iota
	TierExternal
	TierFunction
	TierBuiltin
)

func (t Tier) String() string {
	switch t {
	case TierNotFound:
		return "not found"
	case TierExternal:
		return "external"
	case TierFunction:
		return "function"
	case TierBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Resolution is where a command name resolved to.
type Resolution struct {
	Tier Tier
	// Path is set for TierExternal.
	Path string
	// Body is set for TierFunction.
	Body []Command
	// Builtin is set for TierBuiltin.
	Builtin *Builtin
}

// Options configures an Engine. Zero values pick sensible defaults.
type Options struct {
	// Env is the environment snapshot passed to children. PATH is read from it.
	Env Environ
	// Fs is used to search PATH, defaults to the OS filesystem.
	Fs afero.Fs
	// RequireExecutable only resolves files with an execute bit.
	RequireExecutable bool
	// KeepEmptyArgs passes the empty arguments produced by repeated spaces
	// through to commands, see ParseKeepEmpty.
	KeepEmptyArgs bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Lines is the input the session reads from, block builtins like def
	// consume lines from it too.
	Lines linesource.LineSource
	// ContinuationPrompt is shown while a block builtin reads lines.
	ContinuationPrompt string

	// Executor runs external programs, defaults to a ProcessExecutor sharing
	// the engine's streams.
	Executor Executor
	// Builtins defaults to DefaultBuiltins.
	Builtins *BuiltinRegistry
	// Functions defaults to an empty store.
	Functions *FunctionStore

	MaxFunctionDepth int

	Logger *log.Logger
	Color  bool

	// Getwd and Chdir default to the os package functions.
	Getwd func() (string, error)
	Chdir func(dir string) error
}

// Engine resolves commands against, in order: programs on the search path,
// user functions and builtins, then runs them.
type Engine struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	env       Environ
	search    *SearchPath
	functions *FunctionStore
	builtins  *BuiltinRegistry
	executor  Executor
	lines     linesource.LineSource
	logger    *log.Logger
	palette   palette

	continuationPrompt string
	keepEmptyArgs      bool
	maxDepth           int
	depth              int

	getwd func() (string, error)
	chdir func(dir string) error
}

// NewEngine creates an engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		Stdin:              opts.Stdin,
		Stdout:             orDiscard(opts.Stdout),
		Stderr:             orDiscard(opts.Stderr),
		env:                opts.Env,
		functions:          opts.Functions,
		builtins:           opts.Builtins,
		executor:           opts.Executor,
		lines:              opts.Lines,
		logger:             opts.Logger,
		palette:            newPalette(opts.Color),
		continuationPrompt: opts.ContinuationPrompt,
		keepEmptyArgs:      opts.KeepEmptyArgs,
		maxDepth:           opts.MaxFunctionDepth,
		getwd:              opts.Getwd,
		chdir:              opts.Chdir,
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	e.search = NewSearchPath(fsys, opts.Env.SearchPath())
	e.search.RequireExecutable = opts.RequireExecutable

	if e.functions == nil {
		e.functions = NewFunctionStore()
	}
	if e.builtins == nil {
		e.builtins = NewBuiltinRegistry(DefaultBuiltins()...)
	}
	if e.executor == nil {
		e.executor = &ProcessExecutor{Stdin: e.Stdin, Stdout: e.Stdout, Stderr: e.Stderr}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxFunctionDepth
	}
	if e.getwd == nil {
		e.getwd = os.Getwd
	}
	if e.chdir == nil {
		e.chdir = os.Chdir
	}

	return e
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// Env returns the environment snapshot.
func (e *Engine) Env() Environ {
	return e.env
}

// Functions returns the user function store.
func (e *Engine) Functions() *FunctionStore {
	return e.functions
}

// Builtins returns the builtin registry.
func (e *Engine) Builtins() *BuiltinRegistry {
	return e.builtins
}

// SearchPath returns the resolver used for external programs.
func (e *Engine) SearchPath() *SearchPath {
	return e.search
}

// Resolve determines which tier claims name without running anything.
func (e *Engine) Resolve(name string) Resolution {
	if path, ok := e.search.Resolve(name); ok {
		return Resolution{Tier: TierExternal, Path: path}
	}
	if body, ok := e.functions.Lookup(name); ok {
		return Resolution{Tier: TierFunction, Body: body}
	}
	if builtin, ok := e.builtins.Lookup(name); ok {
		return Resolution{Tier: TierBuiltin, Builtin: builtin}
	}
	return Resolution{Tier: TierNotFound}
}

// ParseLine converts an input line to a command using the engine's
// tokenizing rules.
func (e *Engine) ParseLine(line string) (Command, bool) {
	if e.keepEmptyArgs {
		return ParseKeepEmpty(line)
	}
	return Parse(line)
}

// RunLine parses and dispatches a single input line. Lines without a command
// are ignored.
func (e *Engine) RunLine(line string) Result {
	cmd, ok := e.ParseLine(line)
	if !ok {
		return Result{}
	}
	return e.Dispatch(cmd)
}

// Dispatch resolves cmd and runs it. Failures are reported to the user and
// returned in the result, they're never fatal to the session.
func (e *Engine) Dispatch(cmd Command) Result {
	res := e.Resolve(cmd.Name)
	e.logger.Debug("resolved", "name", cmd.Name, "tier", res.Tier, "path", res.Path)

	switch res.Tier {
	case TierExternal:
		return e.runExternal(res.Path, cmd)

	case TierFunction:
		return e.runFunction(cmd.Name, res.Body)

	case TierBuiltin:
		return Result{Status: res.Builtin.Invoke(e, cmd.Args)}

	default:
		err := &NotFoundError{Name: cmd.Name}
		fmt.Fprintln(e.Stderr, e.palette.errorf("%s", err))
		return Result{Status: StatusNotFound, Err: err}
	}
}

func (e *Engine) runExternal(path string, cmd Command) Result {
	result := e.executor.Execute(path, cmd.Args, e.env.Environ())

	switch {
	case errors.Is(result.Err, ErrProcessReplacementFailed):
		e.logger.Warn("exec failed", "name", cmd.Name, "path", path, "error", result.Err)
		fmt.Fprintln(e.Stderr, e.palette.errorf("%s", result.Err))

	case errors.Is(result.Err, ErrChildWait):
		// Nothing to report to the user, the prompt carries on.
		e.logger.Debug("wait failed", "name", cmd.Name, "error", result.Err)
	}

	return result
}

func (e *Engine) runFunction(name string, body []Command) Result {
	if e.depth >= e.maxDepth {
		fmt.Fprintln(e.Stderr, e.palette.errorf("%s: %v (%d)", name, ErrFunctionDepth, e.maxDepth))
		return Result{Status: 1, Err: ErrFunctionDepth}
	}

	e.depth++
	defer func() { e.depth-- }()

	var last Result
	for _, cmd := range body {
		last = e.Dispatch(cmd)
		if errors.Is(last.Err, ErrFunctionDepth) {
			// Unwind the whole call chain.
			return last
		}
	}
	return last
}
