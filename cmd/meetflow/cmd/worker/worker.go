package worker

import (
	"github.com/spf13/cobra"

	"meetflow/internal/app"
	"meetflow/internal/app/temporal/pkg/common"
	temporalworker "meetflow/internal/app/temporal/worker"
	"meetflow/internal/config"
)

var healthAddr string

func init() {
	Cmd.Flags().StringVar(&healthAddr, "health-addr", common.DefaultHealthAddr,
		"address for the worker health endpoint, empty to disable")
}

// Cmd represents the worker command
var Cmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a Temporal worker serving the meeting pipeline",
	Long: `Run a Temporal worker serving the meeting pipeline.

Reads TEMPORAL_HOST, TEMPORAL_NAMESPACE and TASK_QUEUE from the environment
and blocks until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings("")
		if err != nil {
			return err
		}

		deps, cleanup, err := app.InitializeWorkerDeps(settings)
		if err != nil {
			return err
		}
		defer cleanup()

		return temporalworker.Run(common.DefaultTemporalConfig(), healthAddr, deps)
	},
}
