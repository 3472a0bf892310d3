package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

const (
	// StatusCannotExecute is reported when a resolved file couldn't be run.
	StatusCannotExecute = 126
	// StatusNotFound is reported when a command couldn't be resolved.
	StatusNotFound = 127
)

// Result is the outcome of dispatching a single command.
type Result struct {
	// Status is the exit status of the command. External programs killed by
	// a signal report 128 plus the signal number.
	Status int
	// Err is set if the command couldn't be run to completion.
	Err error
}

// Executor runs external programs.
type Executor interface {
	// Execute runs the program at path with the argument vector args and the
	// environment env, blocking until it exits.
	Execute(path string, args []string, env []string) Result
}

var _ Executor = (*ProcessExecutor)(nil)

// ProcessExecutor runs programs as child processes that share the shell's
// standard streams. Exactly one child is outstanding at a time.
type ProcessExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute implements Executor.Execute.
func (p *ProcessExecutor) Execute(path string, args []string, env []string) Result {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   args,
		Env:    env,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
		Stderr: p.Stderr,
	}
	if len(cmd.Args) == 0 {
		cmd.Args = []string{path}
	}

	if err := cmd.Start(); err != nil {
		status := StatusCannotExecute
		if errors.Is(err, fs.ErrNotExist) {
			status = StatusNotFound
		}
		return Result{Status: status, Err: &ReplacementError{Path: path, Err: err}}
	}

	err := cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{Status: 0}
	case errors.As(err, &exitErr):
		return Result{Status: exitStatus(exitErr.ProcessState)}
	default:
		return Result{Status: exitStatus(cmd.ProcessState), Err: fmt.Errorf("%w: %v", ErrChildWait, err)}
	}
}

func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
