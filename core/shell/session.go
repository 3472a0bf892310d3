package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultPrompt shows the working directory on its own line.
const DefaultPrompt = "[\\w]\n$ "

// Session is the interactive read-dispatch loop.
type Session struct {
	Engine *Engine
	// Prompt is the template rendered before each line, see RenderPrompt.
	Prompt string
}

// Run reads and dispatches lines until the input ends or a line is exactly
// "exit". Dispatch failures never end the session, read errors do.
func (s *Session) Run() error {
	e := s.Engine
	if e.lines == nil {
		return errors.New("session has no input")
	}

	prompt := s.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	for {
		line, err := e.lines.ReadLine(e.RenderPrompt(prompt))
		switch {
		case err == io.EOF:
			return nil // Input closed, quit.
		case err != nil:
			return err
		}

		switch strings.TrimSuffix(line, "\n") {
		case "exit":
			return nil
		case "":
			fmt.Fprintln(e.Stdout)
			continue
		}

		e.RunLine(line)
		fmt.Fprintln(e.Stdout)
	}
}
