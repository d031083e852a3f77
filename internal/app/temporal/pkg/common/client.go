package common

import (
	"fmt"

	"go.temporal.io/sdk/client"
	sdklog "go.temporal.io/sdk/log"

	"meetflow/internal/config"
)

const (
	DefaultTaskQueue    = "meetflow-pipeline-queue"
	DefaultNamespace    = "default"
	DefaultTemporalHost = "127.0.0.1:7233"

	// Worker health endpoint, see worker.StartHealthServer.
	DefaultHealthAddr = ":8090"
)

// TemporalConfig holds Temporal client configuration
type TemporalConfig struct {
	HostPort  string
	Namespace string
	TaskQueue string
}

// DefaultTemporalConfig returns Temporal configuration from the environment
func DefaultTemporalConfig() TemporalConfig {
	return TemporalConfig{
		HostPort:  config.GetEnvOrDefault("TEMPORAL_HOST", DefaultTemporalHost),
		Namespace: config.GetEnvOrDefault("TEMPORAL_NAMESPACE", DefaultNamespace),
		TaskQueue: config.GetEnvOrDefault("TASK_QUEUE", DefaultTaskQueue),
	}
}

// NewTemporalClient creates a new Temporal client with the given configuration
func NewTemporalClient(cfg TemporalConfig, logger sdklog.Logger) (client.Client, error) {
	options := client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
	}
	if logger != nil {
		options.Logger = logger
	}
	c, err := client.Dial(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create Temporal client: %w", err)
	}
	return c, nil
}
