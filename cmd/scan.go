package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tunebox/core/library"
	"tunebox/media"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the music directory for audio files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		index := media.NewFSIndex(cfg.MusicDir)
		scanner := library.NewScanner(media.StaticAuthority{Granted: true}, index, cfg.MediaScanLimit)

		songs, err := scanner.ScanDeviceMusic(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range songs {
			dur := time.Duration(s.Duration) * time.Millisecond
			fmt.Printf("%-40s %-20s %s\n", s.Title, s.Album, dur.Round(time.Second))
		}
		fmt.Printf("found %d song(s) in %s\n", len(songs), cfg.MusicDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
