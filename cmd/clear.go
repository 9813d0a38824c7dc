package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunebox/repository"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all imported songs from the library",
	Long: `Delete the uploaded-songs blob. Device-scanned music and favorites
are untouched; the next library load rebuilds the snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, err := setup()
		if err != nil {
			return err
		}

		repository.NewSongStore(kv).ClearUploadedSongs(cmd.Context())
		fmt.Println("uploaded songs cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
