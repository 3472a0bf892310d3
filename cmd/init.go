package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/josephlewis42/bananashell/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the --config path.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "init"})

		return config.Initialize(afero.NewOsFs(), cfgPath, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
