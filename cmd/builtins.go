package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/josephlewis42/bananashell/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the shell builtins
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := shell.NewBuiltinRegistry(shell.DefaultBuiltins()...)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 8, 8, 2, ' ', 0)
		for _, name := range registry.Names() {
			b, _ := registry.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Kind, b.Short)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
