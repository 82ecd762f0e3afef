package cmd

import (
	"fmt"
	"os"

	"github.com/josephlewis42/jobsh/core/launch"
	"github.com/spf13/cobra"
)

// childCmd is the entry point of re-executed children, see launch.Spawner.
var childCmd = &cobra.Command{
	Use:                launch.ChildCommand,
	Short:              "Run a job started by the shell.",
	Hidden:             true,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		role, opts, err := launch.ParseChildArgs(append([]string{launch.ChildCommand}, args...))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		launch.NewChild(opts).Exit(role)
	},
}

func init() {
	rootCmd.AddCommand(childCmd)
}
