package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/josephlewis42/bananashell/core/compat"
	"github.com/josephlewis42/bananashell/core/config"
	"github.com/josephlewis42/bananashell/core/linesource"
	"github.com/josephlewis42/bananashell/core/shell"
	"github.com/josephlewis42/bananashell/core/terminal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "bananashell")
}

func loadConfig() (*config.Configuration, error) {
	cfg, err := config.LoadOrDefault(afero.NewOsFs(), cfgPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "bananashell",
		Level:  lvl,
	}), nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bananashell",
	Short: "A tiny interactive command shell",
	Long: `Reads commands one line at a time and runs them.

A command name is looked up as a program on PATH first, then as a user
function created with def, then as a shell builtin.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if err := compat.CheckRuntime(compat.MinimumRuntime); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		if cfg.Path() != "" {
			logger.Debug("loaded configuration", "path", cfg.Path())
		}

		return runSession(cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runSession(cfg *config.Configuration, logger *log.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	var lines linesource.LineSource
	switch cfg.LineEditor {
	case config.LineEditorReadline:
		rl, err := linesource.NewReadline(stdin, stdout, stderr, cfg.IncludeNewline)
		if err != nil {
			return fmt.Errorf("starting line editor: %w", err)
		}
		defer rl.Close()
		lines = rl

	default:
		if cfg.Cbreak {
			restore, err := enterCbreak(stdin)
			if err != nil {
				logger.Warn("couldn't enter cbreak mode", "err", err)
			}
			stop := terminal.RestoreOnSignal(restore, os.Exit, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer func() {
				stop()
				if err := restore(); err != nil {
					logger.Error("couldn't restore terminal", "err", err)
				}
			}()
		}
		lines = linesource.NewBuffered(stdin, stdout, cfg.ReadChunkSize, cfg.IncludeNewline)
	}

	engine := newEngine(cfg, logger, shell.Options{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Lines:  lines,
	})

	session := &shell.Session{Engine: engine, Prompt: cfg.Prompt}
	return session.Run()
}

func enterCbreak(stdin io.Reader) (terminal.RestoreFunc, error) {
	f, ok := stdin.(*os.File)
	if !ok {
		return func() error { return nil }, nil
	}
	return terminal.Cbreak(f.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config file or directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
}
