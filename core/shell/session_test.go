package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/bananashell/core/linesource"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Input string
	Files map[string]os.FileMode
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			e := newTestEngine(t, tc.Files, tc.Input)
			session := &Session{Engine: e.Engine, Prompt: DefaultPrompt}

			require.NoError(t, session.Run())

			g.Assert(t, tn, e.out.Bytes())
		})
	}
}

func TestSession(t *testing.T) {
	cases := goldenTestSuite{
		"echo":        {Input: "echo hello world\n"},
		"blank-lines": {Input: "\n\n\n"},
		"not-found":   {Input: "zzz_nope\n"},
		"external":    {Input: "ls -la\n", Files: map[string]os.FileMode{"/bin/ls": 0755}},
		"exit":        {Input: "echo a\nexit\necho b\n"},
		"type":        {Input: "type ls echo nope\n", Files: map[string]os.FileMode{"/bin/ls": 0755}},

		// Function definitions
		"def-append": {Input: "def f {\necho one\n}\ndef f {\n\necho two\n}\nf\n"},
		"def-eof":    {Input: "def g {\necho x\n"},
		"def-usage":  {Input: "def g\n"},
		"precedence": {Input: "def f {\necho fn\n}\nf\n", Files: map[string]os.FileMode{"/bin/f": 0755}},
	}

	cases.Run(t)
}

func TestSession_BlankLinesNeverDispatch(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100} {
		e := newTestEngine(t, map[string]os.FileMode{"/bin/ls": 0755}, strings.Repeat("\n", n))
		session := &Session{Engine: e.Engine, Prompt: "$ "}

		assert.NoError(t, session.Run())
		assert.Empty(t, e.executor.calls)
		assert.Equal(t, strings.Repeat("$ \n", n)+"$ ", e.out.String())
	}
}

func TestSession_ExitWithoutNewline(t *testing.T) {
	e := newTestEngine(t, nil, "exit")
	session := &Session{Engine: e.Engine, Prompt: "$ "}

	assert.NoError(t, session.Run())
	assert.Equal(t, "$ ", e.out.String())
}

func TestSession_ExitMustBeExact(t *testing.T) {
	e := newTestEngine(t, nil, "exit now\n")
	session := &Session{Engine: e.Engine, Prompt: "$ "}

	assert.NoError(t, session.Run())
	assert.Equal(t, "$ command not found: 'exit'\n\n$ ", e.out.String())
}

func TestSession_WithoutNewlines(t *testing.T) {
	e := newTestEngine(t, nil, "")
	e.lines = linesource.NewBuffered(strings.NewReader("\necho hi\nexit\necho never\n"), e.out, 3, false)
	session := &Session{Engine: e.Engine, Prompt: "$ "}

	assert.NoError(t, session.Run())
	assert.Equal(t, "$ \n$ hi\n\n\n$ ", e.out.String())
}

func TestSession_NoInput(t *testing.T) {
	session := &Session{Engine: NewEngine(Options{})}
	assert.Error(t, session.Run())
}
