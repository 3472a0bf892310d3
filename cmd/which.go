package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/bananashell/core/shell"
	"github.com/spf13/cobra"
)

// whichCmd resolves names the way the shell would, without running anything
var whichCmd = &cobra.Command{
	Use:   "which NAME...",
	Short: "Show which program, function or builtin each NAME runs.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}

		engine := newEngine(cfg, logger, shell.Options{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 8, 8, 2, ' ', 0)
		missing := 0
		for _, name := range args {
			res := engine.Resolve(name)
			switch res.Tier {
			case shell.TierExternal:
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, res.Tier, res.Path)
			case shell.TierNotFound:
				missing++
				fmt.Fprintf(w, "%s\t%s\n", name, res.Tier)
			default:
				fmt.Fprintf(w, "%s\t%s\n", name, res.Tier)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if missing > 0 {
			return fmt.Errorf("%d of %d names not found", missing, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whichCmd)
}
