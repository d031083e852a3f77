package models

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"meetflow/internal/app/transcriber/whisper"
	"meetflow/internal/config"
)

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(pullCmd)
}

// Cmd represents the models command
var Cmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and download whisper model weights",
	Long: `Inspect and download whisper model weights.

Weights live under the data directory and are also fetched on demand the
first time a size is requested.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the supported model presets and their download state",
	RunE: func(cmd *cobra.Command, args []string) error {
		modelsDir, err := config.ModelsDir()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SIZE\tFILE\tDISK\tLOCAL")
		for _, info := range whisper.CatalogWithStatus(modelsDir) {
			local := "-"
			if info.Downloaded {
				local = info.LocalPath
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Size, info.FileName, info.SizeLabel, local)
		}
		return w.Flush()
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull [size]",
	Short: "Download the weights for a model size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modelsDir, err := config.ModelsDir()
		if err != nil {
			return err
		}

		path, err := whisper.Ensure(modelsDir, args[0], true)
		if err != nil {
			return err
		}
		fmt.Printf("model ready: %s\n", path)
		return nil
	},
}
