package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"meetflow/cmd/meetflow/cmd/analyze"
	"meetflow/cmd/meetflow/cmd/export"
	"meetflow/cmd/meetflow/cmd/fetch"
	"meetflow/cmd/meetflow/cmd/models"
	"meetflow/cmd/meetflow/cmd/serve"
	"meetflow/cmd/meetflow/cmd/version"
	"meetflow/cmd/meetflow/cmd/worker"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meetflow",
	Short: "Turn meeting recordings into transcripts, summaries and action items",
	Long: `Turn meeting recordings into transcripts, summaries and action items.
- Transcription runs locally through whisper.cpp, weights are fetched on demand
- Analysis goes to a hosted LLM and the run degrades to transcript-only when it is unreachable
- Processed meetings are saved to sqlite, or Postgres when MEETFLOW_POSTGRES_DSN is set`,
	TraverseChildren: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if Verbose {
			os.Setenv("LOG_LEVEL", "debug")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(worker.Cmd)
	rootCmd.AddCommand(models.Cmd)
	rootCmd.AddCommand(fetch.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
