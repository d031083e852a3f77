package fetch

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"meetflow/internal/app/fetch"
)

var downloadDir string

func init() {
	Cmd.Flags().StringVarP(&downloadDir, "dir", "d", "data/podcasts",
		"directory to save downloaded episodes")
}

// Cmd represents the fetch command
var Cmd = &cobra.Command{
	Use:   "fetch [episode-url]...",
	Short: "Download podcast episodes for offline processing",
	Long: `Download podcast episodes for offline processing.

Episode pages are resolved through their Open Graph metadata, so any page
exposing og:audio works. Downloaded files can be fed to "meetflow analyze".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dir, err := filepath.Abs(downloadDir)
		if err != nil {
			return err
		}

		for _, pageURL := range args {
			episode, err := fetch.EpisodeInfo(ctx, pageURL)
			if err != nil {
				return err
			}
			path, err := fetch.DownloadEpisode(ctx, episode, dir, true)
			if err != nil {
				return err
			}
			fmt.Printf("downloaded %q to %s\n", episode.Title, path)
		}
		return nil
	},
}
