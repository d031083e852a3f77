package app

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"meetflow/internal/api/server"
	"meetflow/internal/app/analyzer"
	"meetflow/internal/app/pipeline"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/repository/pg"
	"meetflow/internal/app/repository/sqlite"
	"meetflow/internal/app/storage"
	"meetflow/internal/app/temporal/worker"
	"meetflow/internal/app/transcriber"
	"meetflow/internal/app/transcriber/whisper"
	"meetflow/internal/config"
)

// PostgresDSNEnv switches persistence from the default sqlite file to
// postgres when set.
const PostgresDSNEnv = "MEETFLOW_POSTGRES_DSN"

func provideLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(config.GetEnvOrDefault("LOG_LEVEL", "info"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func provideModelCache() (*whisper.ModelCache, func(), error) {
	modelsDir, err := config.ModelsDir()
	if err != nil {
		return nil, nil, err
	}
	cache := whisper.NewModelCache(whisper.DefaultLoader(modelsDir))
	cleanup := func() {
		if err := cache.Close(); err != nil {
			slog.Warn("failed to close model cache", "error", err)
		}
	}
	return cache, cleanup, nil
}

func provideTranscriber(cache *whisper.ModelCache, settings config.Settings) transcriber.Transcriber {
	return whisper.NewEngine(cache, settings.Whisper)
}

// provideAnalyzer builds the configured analysis backend, wrapped in the
// redis result cache when MEETFLOW_REDIS_URL is set. A bad redis URL only
// disables caching.
func provideAnalyzer(settings config.Settings) (analyzer.Analyzer, error) {
	base, err := analyzer.New(settings.Analyzer)
	if err != nil {
		return nil, err
	}

	client, err := analyzer.NewRedisClient(os.Getenv(analyzer.RedisURLEnv))
	if err != nil {
		slog.Warn("invalid redis URL, analysis cache disabled", "error", err)
		return base, nil
	}
	if client == nil {
		return base, nil
	}
	return analyzer.NewCachedAnalyzer(base, client, settings.Analyzer.CacheTTL(),
		settings.Analyzer.Backend, settings.Analyzer.Candidates), nil
}

// OpenRepository opens the configured meeting store outside the injector
// graph, for commands that only need persistence.
func OpenRepository() (repository.MeetingRepository, func(), error) {
	return provideRepository()
}

func provideRepository() (repository.MeetingRepository, func(), error) {
	if dsn := os.Getenv(PostgresDSNEnv); dsn != "" {
		repo, err := pg.NewRepository(dsn)
		if err != nil {
			return nil, nil, err
		}
		return repo, closeRepo(repo), nil
	}

	dbPath, err := config.SQLitePath()
	if err != nil {
		return nil, nil, err
	}
	repo, err := sqlite.NewRepository(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, closeRepo(repo), nil
}

func closeRepo(repo repository.MeetingRepository) func() {
	return func() {
		if err := repo.Close(); err != nil {
			slog.Warn("failed to close repository", "error", err)
		}
	}
}

func provideArchive() (*storage.Archive, error) {
	archive, err := storage.NewArchive(storage.ConfigFromEnv())
	if err != nil || archive == nil {
		return archive, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.EnsureBucket(ctx); err != nil {
		// Archival is best-effort; uploads will keep failing until the
		// bucket exists but the pipeline itself is unaffected.
		slog.Warn("failed to ensure archive bucket", "error", err)
	}
	return archive, nil
}

func providePipelineRunner(t transcriber.Transcriber, a analyzer.Analyzer, repo repository.MeetingRepository, archive *storage.Archive) *pipeline.Runner {
	// A nil *Archive must stay a nil interface or the runner would call it.
	var archiver pipeline.Archiver
	if archive != nil {
		archiver = archive
	}
	return pipeline.NewRunner(t, a, repo, archiver)
}

func provideWorkerDeps(t transcriber.Transcriber, a analyzer.Analyzer, repo repository.MeetingRepository, archive *storage.Archive) worker.Deps {
	return worker.Deps{
		Transcriber: t,
		Analyzer:    a,
		Repository:  repo,
		Archive:     archive,
	}
}

func provideServerConfig(settings config.Settings) (server.Config, error) {
	modelsDir, err := config.ModelsDir()
	if err != nil {
		return server.Config{}, err
	}

	// Transcription runs inside the request, so the write timeout has to
	// cover whisper inference on long recordings.
	return server.Config{
		Host:             config.GetEnvOrDefault("MEETFLOW_HOST", "0.0.0.0"),
		Port:             settings.Server.Port,
		ReadTimeout:      config.GetEnvDurationOrDefault("SERVER_READ_TIMEOUT", 10*time.Minute),
		WriteTimeout:     config.GetEnvDurationOrDefault("SERVER_WRITE_TIMEOUT", 20*time.Minute),
		IdleTimeout:      config.GetEnvDurationOrDefault("SERVER_IDLE_TIMEOUT", time.Minute),
		Environment:      config.GetEnvOrDefault("MEETFLOW_ENV", "development"),
		MaxUploadMB:      settings.Server.MaxUploadMB,
		ModelsDir:        modelsDir,
		DefaultModelSize: settings.Whisper.ModelSize,
	}, nil
}

func provideServer(cfg server.Config, runner *pipeline.Runner, repo repository.MeetingRepository, archive *storage.Archive, cache *whisper.ModelCache, logger *slog.Logger) *server.Server {
	return server.NewServer(cfg, runner, repo, archive, cache, logger)
}
