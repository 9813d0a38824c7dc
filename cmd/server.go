package cmd

import (
	"github.com/spf13/cobra"

	"tunebox/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the tunebox HTTP server",
	Long:  `Start the tunebox server, exposing the music library API and event stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
