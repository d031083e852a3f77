package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetflow/internal/app/analyzer"
	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/metrics"
	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/transcriber"
	"meetflow/internal/app/utils"
)

// Upload is an audio stream entering the pipeline, typically a multipart
// file from the API.
type Upload struct {
	FileName     string
	Reader       io.Reader
	Title        string
	ModelSize    string
	Language     string
	SkipAnalysis bool
}

// Options tune a single pipeline run.
type Options struct {
	Title string
	// SourceName is recorded as the meeting's source; defaults to the
	// audio file's base name.
	SourceName   string
	ModelSize    string
	Language     string
	SkipAnalysis bool

	// SkipProcessed short-circuits files whose audio hash already has a
	// stored meeting, returning it with ErrAlreadyProcessed.
	SkipProcessed bool
}

// ErrAlreadyProcessed reports that the audio was transcribed before. The
// previous meeting accompanies the error.
var ErrAlreadyProcessed = apperrors.New("audio already processed")

// Archiver stores the source audio and transcript after a run.
type Archiver interface {
	ArchiveMeeting(ctx context.Context, meeting *model.Meeting, audioPath string) error
}

// Runner executes the transcribe-then-analyze pipeline. repo and archive
// may be nil; persistence and archival are then skipped.
type Runner struct {
	transcriber transcriber.Transcriber
	analyzer    analyzer.Analyzer
	repo        repository.MeetingRepository
	archive     Archiver
}

func NewRunner(t transcriber.Transcriber, a analyzer.Analyzer, repo repository.MeetingRepository, archive Archiver) *Runner {
	return &Runner{
		transcriber: t,
		analyzer:    a,
		repo:        repo,
		archive:     archive,
	}
}

// ProcessUpload spools the upload to a unique temp file and runs the
// pipeline on it. The temp file is removed on every exit path.
func (r *Runner) ProcessUpload(ctx context.Context, upload Upload) (*model.Meeting, error) {
	tempPath, err := spoolUpload(upload.FileName, upload.Reader)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(model.StatusFailed).Inc()
		return nil, err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			slog.Warn("failed to remove temp audio", "path", tempPath, "error", err)
		}
	}()

	return r.ProcessFile(ctx, tempPath, Options{
		Title:        upload.Title,
		SourceName:   upload.FileName,
		ModelSize:    upload.ModelSize,
		Language:     upload.Language,
		SkipAnalysis: upload.SkipAnalysis,
	})
}

// ProcessFile runs the pipeline on an audio file already on disk. The file
// is left in place. A non-nil meeting may accompany a non-nil error when
// processing succeeded but persistence failed.
func (r *Runner) ProcessFile(ctx context.Context, audioPath string, opts Options) (*model.Meeting, error) {
	meeting, err := r.run(ctx, audioPath, opts)
	switch {
	case errors.Is(err, ErrAlreadyProcessed):
		// A skipped file is not a failed run.
	case err != nil:
		metrics.PipelineRuns.WithLabelValues(model.StatusFailed).Inc()
	case meeting != nil:
		metrics.PipelineRuns.WithLabelValues(meeting.Status).Inc()
	}
	return meeting, err
}

func (r *Runner) run(ctx context.Context, audioPath string, opts Options) (*model.Meeting, error) {
	sourceName := opts.SourceName
	if sourceName == "" {
		sourceName = filepath.Base(audioPath)
	}
	title := opts.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	}

	hash, err := utils.CalculateFileHash(audioPath)
	if err != nil {
		slog.Warn("could not hash audio", "path", audioPath, "error", err)
	}

	if opts.SkipProcessed && hash != "" && r.repo != nil {
		if existing, err := r.repo.FindByHash(ctx, hash); err == nil {
			return existing, ErrAlreadyProcessed
		}
	}

	started := time.Now()
	tr, err := r.transcriber.Transcribe(ctx, transcriber.Request{
		InputFilePath: audioPath,
		ModelSize:     opts.ModelSize,
		Language:      opts.Language,
	})
	if err != nil {
		r.recordFailure(ctx, title, sourceName, opts.ModelSize, hash, err)
		return nil, err
	}
	metrics.TranscriptionSeconds.Observe(time.Since(started).Seconds())

	meeting := &model.Meeting{
		ID:          uuid.NewString(),
		Title:       title,
		SourceFile:  sourceName,
		AudioHash:   hash,
		DurationSec: tr.Duration.Seconds(),
		Language:    tr.Language,
		Transcript:  tr.Text,
		ModelSize:   tr.ModelSize,
		Status:      model.StatusCompleted,
		CreatedAt:   time.Now(),
	}

	switch {
	case tr.Text == "":
		meeting.Status = model.StatusTranscriptOnly
		meeting.ErrorDetail = "no speech detected"
	case opts.SkipAnalysis || r.analyzer == nil:
		meeting.Status = model.StatusTranscriptOnly
	default:
		analysis, err := r.analyzer.Analyze(ctx, tr.Text)
		if err != nil {
			// The transcript is kept; analysis can be retried later.
			meeting.Status = model.StatusTranscriptOnly
			meeting.ErrorDetail = err.Error()
			slog.Warn("analysis failed, keeping transcript", "meeting", meeting.ID, "error", err)
		} else {
			meeting.Summary = analysis.Summary
			meeting.ActionItems = analysis.ActionItems
			meeting.AnalysisModel = analysis.Model
			if analysis.Degraded {
				meeting.ErrorDetail = "analysis response was not valid JSON"
			}
		}
	}

	if r.repo != nil {
		if err := r.repo.Save(ctx, meeting); err != nil {
			return meeting, apperrors.Wrap(err, "saving meeting")
		}
	}

	if r.archive != nil {
		if err := r.archive.ArchiveMeeting(ctx, meeting, audioPath); err != nil {
			slog.Warn("archive failed", "meeting", meeting.ID, "error", err)
		}
	}

	slog.Info("pipeline run finished",
		"meeting", meeting.ID,
		"status", meeting.Status,
		"language", meeting.Language,
		"segments_duration_sec", meeting.DurationSec)

	return meeting, nil
}

// recordFailure keeps a trace of runs that died before producing a
// transcript.
func (r *Runner) recordFailure(ctx context.Context, title, sourceName, modelSize, hash string, cause error) {
	if r.repo == nil {
		return
	}
	meeting := &model.Meeting{
		ID:          uuid.NewString(),
		Title:       title,
		SourceFile:  sourceName,
		AudioHash:   hash,
		ModelSize:   modelSize,
		Status:      model.StatusFailed,
		ErrorDetail: cause.Error(),
		CreatedAt:   time.Now(),
	}
	if err := r.repo.Save(ctx, meeting); err != nil {
		slog.Warn("could not record failed run", "error", err)
	}
}
