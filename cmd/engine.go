package cmd

import (
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/josephlewis42/bananashell/core/config"
	"github.com/josephlewis42/bananashell/core/shell"
	"github.com/mattn/go-isatty"
)

// newEngine builds an engine from the configuration. Streams and input come
// from opts, everything else is filled in here.
func newEngine(cfg *config.Configuration, logger *log.Logger, opts shell.Options) *shell.Engine {
	opts.Env = shell.NewEnviron(os.Environ())
	opts.RequireExecutable = cfg.RequireExecutable
	opts.ContinuationPrompt = cfg.ContinuationPrompt
	opts.MaxFunctionDepth = cfg.MaxFunctionDepth
	opts.KeepEmptyArgs = cfg.KeepEmptyArgs
	opts.Logger = logger
	opts.Color = useColor(cfg.Color, opts.Stdout)

	engine := shell.NewEngine(opts)
	defineConfiguredFunctions(engine, cfg, logger)
	return engine
}

// defineConfiguredFunctions parses the configured function bodies with the
// engine's tokenizing rules.
func defineConfiguredFunctions(engine *shell.Engine, cfg *config.Configuration, logger *log.Logger) {
	store := engine.Functions()

	names := make([]string, 0, len(cfg.Functions))
	for name := range cfg.Functions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var body []shell.Command
		for _, line := range cfg.Functions[name] {
			cmd, ok := engine.ParseLine(line)
			if !ok {
				logger.Warn("skipping blank line in configured function", "function", name)
				continue
			}
			body = append(body, cmd)
		}
		store.Define(name, body...)
	}
}

func useColor(setting string, w io.Writer) bool {
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
