package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tunebox/core/library"
	"tunebox/media"
	"tunebox/repository"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <files...>",
	Short: "Import audio files into the library",
	Long: `Import one or more audio files. Metadata is inferred from each
filename ("Artist - Title.ext"); the files themselves are referenced in
place, not copied.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, kv, err := setup()
		if err != nil {
			return err
		}

		songStore := repository.NewSongStore(kv)
		uploader := library.NewUploader(
			media.StaticAuthority{Granted: true},
			media.PathPicker{Paths: args},
			songStore,
		)

		bar := progressbar.NewOptions(100,
			progressbar.OptionSetDescription("importing"),
			progressbar.OptionShowCount(),
		)
		uploader.OnProgress = func(pct float64) {
			bar.Set(int(pct))
		}

		songs, err := uploader.UploadFiles(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println()

		for _, s := range songs {
			fmt.Printf("%s - %s [%s]\n", s.Artist, s.Title, s.Genre)
		}
		fmt.Printf("imported %d song(s)\n", len(songs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
