// Package linesource reads input one line at a time for the interactive shell.
//
// End of input is reported with io.EOF and an empty line. A blank line is
// returned as "\n" (or "" with a nil error when newlines are stripped), so the
// two are never confused.
package linesource

// LineSource produces one logical line of input per call.
type LineSource interface {
	// ReadLine writes prompt to the output and returns the next line of input.
	// It returns io.EOF once the input is exhausted and nothing is buffered.
	ReadLine(prompt string) (string, error)
}
