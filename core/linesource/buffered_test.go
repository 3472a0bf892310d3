package linesource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads lines until io.EOF.
func readAll(t *testing.T, src LineSource) []string {
	t.Helper()

	var out []string
	for i := 0; ; i++ {
		if i > 1000 {
			t.Fatal("reader never returned io.EOF")
		}
		line, err := src.ReadLine("")
		if err == io.EOF {
			assert.Equal(t, "", line, "EOF must come with an empty line")
			return out
		}
		require.NoError(t, err)
		out = append(out, line)
	}
}

// splitLines splits s the way the reader should, keeping newlines.
func splitLines(s string) []string {
	var out []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i+1])
		s = s[i+1:]
	}
	return out
}

func ExampleBuffered() {
	src := NewBuffered(strings.NewReader("ls -la\n\nexit\n"), nil, 4, true)

	for {
		line, err := src.ReadLine("")
		if err == io.EOF {
			fmt.Println("EOF")
			break
		}
		fmt.Printf("%q\n", line)
	}

	// Output: "ls -la\n"
	// "\n"
	// "exit\n"
	// EOF
}

func TestBuffered_ChunkBoundaries(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"\n\n\n",
		"echo hi\n",
		"echo hi",
		"a\nbb\nccc\ndddd\neeeee\n",
		"def f {\necho one\n}\nf\n",
		"trailing bytes without newline\nleft",
		"multi byte ✓ runes\nsplit 🍌 across chunks\n",
	}

	for _, input := range inputs {
		for _, chunkSize := range []int{1, 2, 3, 4, 7, 64, 4096} {
			t.Run(fmt.Sprintf("%q/%d", input, chunkSize), func(t *testing.T) {
				src := NewBuffered(strings.NewReader(input), nil, chunkSize, true)
				got := readAll(t, src)

				if diff := cmp.Diff(splitLines(input), got); diff != "" {
					t.Errorf("lines mismatch (-want +got):\n%s", diff)
				}
				// Concatenating every line reconstructs the stream.
				assert.Equal(t, input, strings.Join(got, ""))
			})
		}
	}
}

func TestBuffered_ShortReads(t *testing.T) {
	input := "first line\nsecond\n\nthird"

	readers := map[string]io.Reader{
		"one-byte":  iotest.OneByteReader(strings.NewReader(input)),
		"half":      iotest.HalfReader(strings.NewReader(input)),
		"data-err":  iotest.DataErrReader(strings.NewReader(input)),
		"multi-src": io.MultiReader(strings.NewReader("first li"), strings.NewReader("ne\nsecond\n"), strings.NewReader("\nthird")),
	}

	for tn, r := range readers {
		t.Run(tn, func(t *testing.T) {
			got := readAll(t, NewBuffered(r, nil, 5, true))
			if diff := cmp.Diff(splitLines(input), got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuffered_LeftoverRetained(t *testing.T) {
	// A single chunk holds more than one line.
	src := NewBuffered(strings.NewReader("a\nb\nc"), nil, 64, true)

	line, err := src.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "a\n", line)
	assert.Equal(t, 3, src.Buffered())

	line, err = src.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "b\n", line)

	line, err = src.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "c", line)

	_, err = src.ReadLine("")
	assert.Equal(t, io.EOF, err)

	// EOF is reported every time once exhausted.
	_, err = src.ReadLine("")
	assert.Equal(t, io.EOF, err)
}

func TestBuffered_BlankLineIsNotEOF(t *testing.T) {
	src := NewBuffered(strings.NewReader("\n"), nil, 1, true)

	line, err := src.ReadLine("")
	assert.NoError(t, err)
	assert.Equal(t, "\n", line)

	line, err = src.ReadLine("")
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "", line)
}

func TestBuffered_ExcludeNewline(t *testing.T) {
	src := NewBuffered(strings.NewReader("one\n\ntwo"), nil, 2, false)

	got := readAll(t, src)
	assert.Equal(t, []string{"one", "", "two"}, got)
}

func TestBuffered_Prompt(t *testing.T) {
	out := &bytes.Buffer{}
	src := NewBuffered(strings.NewReader("x\n"), out, 4, true)

	_, err := src.ReadLine("[/tmp]\n$ ")
	require.NoError(t, err)
	_, err = src.ReadLine("$ ")
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, "[/tmp]\n$ $ ", out.String())
}

func TestBuffered_ReadError(t *testing.T) {
	boom := errors.New("boom")
	src := NewBuffered(iotest.ErrReader(boom), nil, 4, true)

	_, err := src.ReadLine("")
	assert.ErrorIs(t, err, boom)
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestBuffered_NoProgress(t *testing.T) {
	src := NewBuffered(emptyReader{}, nil, 4, true)

	_, err := src.ReadLine("")
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

func TestBuffered_DefaultChunkSize(t *testing.T) {
	src := NewBuffered(strings.NewReader(""), nil, 0, true)
	assert.Len(t, src.chunk, DefaultChunkSize)
}
