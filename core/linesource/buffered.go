package linesource

import (
	"bytes"
	"errors"
	"io"
)

// DefaultChunkSize is the number of bytes requested per read.
const DefaultChunkSize = 4

// maxEmptyReads bounds the number of consecutive (0, nil) reads tolerated
// before giving up, matching bufio.
const maxEmptyReads = 100

var _ LineSource = (*Buffered)(nil)

// Buffered is a minimal line reader that pulls fixed size chunks from its
// input so it doesn't need a read call per byte. Bytes past the end of the
// returned line are kept for the next call.
type Buffered struct {
	in  io.Reader
	out io.Writer

	includeNewline bool

	chunk []byte
	buf   []byte
}

// NewBuffered creates a Buffered reading chunkSize bytes at a time from in and
// writing prompts to out. If includeNewline is set, returned lines keep their
// trailing newline.
func NewBuffered(in io.Reader, out io.Writer, chunkSize int, includeNewline bool) *Buffered {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Buffered{
		in:             in,
		out:            out,
		includeNewline: includeNewline,
		chunk:          make([]byte, chunkSize),
	}
}

// ReadLine implements LineSource.ReadLine.
func (b *Buffered) ReadLine(prompt string) (string, error) {
	if prompt != "" && b.out != nil {
		if _, err := io.WriteString(b.out, prompt); err != nil {
			return "", err
		}
	}

	scanned := 0
	emptyReads := 0
	for {
		if i := bytes.IndexByte(b.buf[scanned:], '\n'); i >= 0 {
			return b.take(scanned+i+1, true), nil
		}
		scanned = len(b.buf)

		n, err := b.in.Read(b.chunk)
		b.buf = append(b.buf, b.chunk[:n]...)

		switch {
		case n > 0 && err == nil:
			emptyReads = 0
			continue

		case err == nil:
			emptyReads++
			if emptyReads < maxEmptyReads {
				continue
			}
			err = io.ErrNoProgress
		}

		// Look for a line in the final chunk before reporting anything.
		if i := bytes.IndexByte(b.buf[scanned:], '\n'); i >= 0 {
			return b.take(scanned+i+1, true), nil
		}

		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if len(b.buf) == 0 {
			return "", io.EOF
		}

		// Input ended mid-line, hand back what's there.
		return b.take(len(b.buf), false), nil
	}
}

// Buffered returns the number of bytes read from the input but not yet
// returned as part of a line.
func (b *Buffered) Buffered() int {
	return len(b.buf)
}

// take consumes the first n bytes of the buffer.
func (b *Buffered) take(n int, endsInNewline bool) string {
	end := n
	if endsInNewline && !b.includeNewline {
		end--
	}
	line := string(b.buf[:end])

	remaining := copy(b.buf, b.buf[n:])
	b.buf = b.buf[:remaining]

	return line
}
