package shell

import (
	"strings"

	"github.com/fatih/color"
)

// palette colors user facing output when enabled.
type palette struct {
	errText   *color.Color
	directory *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		errText:   color.New(color.FgRed),
		directory: color.New(color.FgBlue, color.Bold),
	}

	for _, c := range []*color.Color{p.errText, p.directory} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) errorf(format string, a ...interface{}) string {
	return p.errText.Sprintf(format, a...)
}

// RenderPrompt expands a prompt template, \w is replaced by the working
// directory.
func (e *Engine) RenderPrompt(template string) string {
	wd, err := e.getwd()
	if err != nil {
		wd = "?"
	}
	return strings.ReplaceAll(template, `\w`, e.palette.directory.Sprint(wd))
}
