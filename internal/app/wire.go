//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"meetflow/internal/api/server"
	"meetflow/internal/app/pipeline"
	"meetflow/internal/app/temporal/worker"
	"meetflow/internal/config"
)

// InitializePipeline assembles the transcribe-then-analyze runner for
// one-shot CLI use. The cleanup closes the model cache and repository.
func InitializePipeline(settings config.Settings) (*pipeline.Runner, func(), error) {
	wire.Build(
		provideModelCache,
		provideTranscriber,
		provideAnalyzer,
		provideRepository,
		provideArchive,
		providePipelineRunner,
	)
	return nil, nil, nil
}

// InitializeServer assembles the HTTP API server with its full pipeline.
func InitializeServer(settings config.Settings) (*server.Server, func(), error) {
	wire.Build(
		provideLogger,
		provideModelCache,
		provideTranscriber,
		provideAnalyzer,
		provideRepository,
		provideArchive,
		providePipelineRunner,
		provideServerConfig,
		provideServer,
	)
	return nil, nil, nil
}

// InitializeWorkerDeps assembles the dependency set a pipeline worker
// registers its activities with.
func InitializeWorkerDeps(settings config.Settings) (worker.Deps, func(), error) {
	wire.Build(
		provideModelCache,
		provideTranscriber,
		provideAnalyzer,
		provideRepository,
		provideArchive,
		provideWorkerDeps,
	)
	return worker.Deps{}, nil, nil
}
