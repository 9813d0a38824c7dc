package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tunebox/server"
)

var rootCmd = &cobra.Command{
	Use:   "tunebox",
	Short: "tunebox is a personal music library service.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
