package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meetflow/internal/app"
	"meetflow/internal/config"
)

var port string

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides the configured server.port")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MeetFlow HTTP API",
	Long: `Run the MeetFlow HTTP API.

- POST /api/v1/meetings accepts an audio upload and processes it in-request
- Swagger UI is served at /swagger/index.html
- Prometheus metrics are served at /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings("")
		if err != nil {
			return err
		}
		if port != "" {
			settings.Server.Port = port
		}

		srv, cleanup, err := app.InitializeServer(settings)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
