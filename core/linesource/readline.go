package linesource

import (
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

var _ LineSource = (*Readline)(nil)

// Readline is a LineSource backed by an interactive line editor with history
// and cursor movement.
type Readline struct {
	instance *readline.Instance
	out      io.Writer

	includeNewline bool
}

// NewReadline creates a line editor reading from stdin.
func NewReadline(stdin io.Reader, stdout, stderr io.Writer, includeNewline bool) (*Readline, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	instance, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Readline{
		instance:       instance,
		out:            stdout,
		includeNewline: includeNewline,
	}, nil
}

// ReadLine implements LineSource.ReadLine.
func (r *Readline) ReadLine(prompt string) (string, error) {
	leading, last := splitPrompt(prompt)
	if leading != "" {
		if _, err := io.WriteString(r.out, leading); err != nil {
			return "", err
		}
	}
	r.instance.SetPrompt(last)

	line, err := r.instance.Readline()
	switch {
	case err == readline.ErrInterrupt:
		// Interrupt clears the line.
		line = ""

	case err != nil:
		return "", err
	}

	if r.includeNewline {
		line += "\n"
	}
	return line, nil
}

// Close releases the terminal.
func (r *Readline) Close() error {
	return r.instance.Close()
}

// splitPrompt separates the completed lines of a prompt from the final line,
// the line editor only redraws the latter.
func splitPrompt(prompt string) (leading, last string) {
	i := strings.LastIndexByte(prompt, '\n')
	if i < 0 {
		return "", prompt
	}
	return prompt[:i+1], prompt[i+1:]
}
