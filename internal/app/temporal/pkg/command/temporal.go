package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"meetflow/internal/app/temporal/pkg/common"
	"meetflow/internal/app/temporal/workflows"
)

// NewPipelineClient dials Temporal for submitting meeting workflows.
func NewPipelineClient(cfg common.TemporalConfig) (client.Client, error) {
	return common.NewTemporalClient(cfg, nil)
}

// SubmitMeeting starts a meeting pipeline workflow and returns the workflow ID
// without waiting for the result.
func SubmitMeeting(ctx context.Context, c client.Client, cfg common.TemporalConfig, req workflows.MeetingPipelineRequest) (string, error) {
	run, err := c.ExecuteWorkflow(ctx, startOptions(cfg, req), workflows.MeetingPipelineWorkflow, req)
	if err != nil {
		return "", fmt.Errorf("failed to start meeting workflow: %w", err)
	}
	return run.GetID(), nil
}

// RunMeeting starts a meeting pipeline workflow and blocks until it finishes,
// invoking progressFunc periodically while the workflow is running.
func RunMeeting(ctx context.Context, c client.Client, cfg common.TemporalConfig, req workflows.MeetingPipelineRequest, progressFunc func(elapsed time.Duration)) (workflows.MeetingPipelineResult, error) {
	var result workflows.MeetingPipelineResult

	run, err := c.ExecuteWorkflow(ctx, startOptions(cfg, req), workflows.MeetingPipelineWorkflow, req)
	if err != nil {
		return result, fmt.Errorf("failed to start meeting workflow: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- run.Get(ctx, &result)
	}()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	started := time.Now()

	for {
		select {
		case err := <-done:
			return result, err

		case <-ticker.C:
			if progressFunc != nil {
				progressFunc(time.Since(started))
			}

		case <-ctx.Done():
			return result, ctx.Err()
		}
	}
}

func startOptions(cfg common.TemporalConfig, req workflows.MeetingPipelineRequest) client.StartWorkflowOptions {
	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	return client.StartWorkflowOptions{
		ID:        fmt.Sprintf("meeting-%s-%d", base, time.Now().Unix()),
		TaskQueue: cfg.TaskQueue,
	}
}
