package worker

import (
	"fmt"
	"os"
	"time"

	sdkworker "go.temporal.io/sdk/worker"

	"meetflow/internal/app/analyzer"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/storage"
	"meetflow/internal/app/temporal/activities"
	"meetflow/internal/app/temporal/pkg/common"
	"meetflow/internal/app/temporal/workflows"
	"meetflow/internal/app/transcriber"
	"meetflow/internal/config"
)

// Deps are the pipeline dependencies the worker serves activities with.
type Deps struct {
	Transcriber transcriber.Transcriber
	Analyzer    analyzer.Analyzer
	Repository  repository.MeetingRepository
	Archive     *storage.Archive
}

// Run connects to Temporal and serves the meeting pipeline until interrupted.
func Run(cfg common.TemporalConfig, healthAddr string, deps Deps) error {
	logger := common.MustNewLogger(false)
	defer logger.Sync()

	c, err := common.NewTemporalClient(cfg, common.NewZapAdapter(logger))
	if err != nil {
		return fmt.Errorf("connecting to temporal at %s: %w", cfg.HostPort, err)
	}
	defer c.Close()

	hostname, _ := os.Hostname()
	workerID := fmt.Sprintf("meetflow-worker-%s-%d", hostname, os.Getpid())

	w := sdkworker.New(c, cfg.TaskQueue, sdkworker.Options{
		Identity: workerID,
		// Whisper inference is CPU-bound, keep the activity slots low.
		MaxConcurrentActivityExecutionSize: config.GetEnvIntOrDefault("WORKER_MAX_CONCURRENT_ACTIVITIES", 2),
	})

	w.RegisterWorkflow(workflows.MeetingPipelineWorkflow)
	w.RegisterActivity(activities.NewTranscribeActivities(deps.Transcriber))
	w.RegisterActivity(activities.NewAnalyzeActivities(deps.Analyzer))
	w.RegisterActivity(activities.NewPersistActivities(deps.Repository, deps.Archive))

	if healthAddr != "" {
		StartHealthServer(healthAddr, &HealthStatus{
			WorkerID:  workerID,
			TaskQueue: cfg.TaskQueue,
			Status:    "running",
			StartedAt: time.Now(),
			Temporal: ConnectionStatus{
				Connected: true,
				Endpoint:  cfg.HostPort,
			},
		})
	}

	logger.Sugar().Infow("meetflow worker started",
		"taskQueue", cfg.TaskQueue,
		"temporal", cfg.HostPort)

	return w.Run(sdkworker.InterruptCh())
}
