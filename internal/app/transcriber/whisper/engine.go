package whisper

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	gowhisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"meetflow/internal/app/audio"
	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/model"
	"meetflow/internal/app/transcriber"
	"meetflow/internal/config"
)

const sampleRate = 16000

// Engine runs local whisper inference. It is cheap to share; model weights
// live in the cache and are resolved per request.
type Engine struct {
	cache    *ModelCache
	size     string
	language string
	threads  uint
}

// NewEngine creates a transcription engine with the configured defaults.
func NewEngine(cache *ModelCache, settings config.WhisperSettings) *Engine {
	return &Engine{
		cache:    cache,
		size:     settings.ModelSize,
		language: settings.Language,
		threads:  uint(settings.Threads),
	}
}

// DefaultSize returns the model size used when a request does not name one.
func (e *Engine) DefaultSize() string { return e.size }

// Transcribe converts the audio file to text with timed segments.
func (e *Engine) Transcribe(ctx context.Context, req transcriber.Request) (*model.TranscriptionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := req.ModelSize
	if size == "" {
		size = e.size
	}

	if err := audio.CheckFormat(req.InputFilePath); err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.InputFilePath); err != nil {
		return nil, apperrors.FileAccess(err, req.InputFilePath)
	}

	// Load (or reuse) the model before paying for conversion.
	handle, err := e.cache.Get(size)
	if err != nil {
		return nil, err
	}

	wavPath, created, err := audio.EnsureWhisperWav(req.InputFilePath)
	if err != nil {
		return nil, err
	}
	if created {
		defer os.Remove(wavPath)
	}

	samples, err := audio.ReadWavSamples(wavPath)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wctx, err := handle.Model.NewContext()
	if err != nil {
		return nil, apperrors.ModelLoad(err, size)
	}

	language := req.Language
	if language == "" {
		language = e.language
	}
	if language == "" {
		language = "auto"
	}
	if err := wctx.SetLanguage(language); err != nil {
		return nil, apperrors.Wrapf(err, "setting language %q", language)
	}
	wctx.SetTranslate(false)
	if e.threads > 0 {
		wctx.SetThreads(e.threads)
	}

	var segments []model.Segment
	collect := func(segment gowhisper.Segment) {
		segments = append(segments, model.Segment{
			ID:    segment.Num,
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		})
	}

	start := time.Now()
	handle.Acquire()
	err = wctx.Process(samples, nil, collect, nil)
	handle.Release()
	if err != nil {
		return nil, apperrors.Wrapf(err, "whisper inference on %s", req.InputFilePath)
	}

	detected := language
	if detected == "auto" {
		if lang := wctx.DetectedLanguage(); lang != "" {
			detected = lang
		}
	}

	result := &model.TranscriptionResult{
		Segments:  segments,
		Text:      joinSegments(segments),
		Language:  detected,
		Duration:  time.Duration(float64(len(samples)) / sampleRate * float64(time.Second)),
		ModelSize: size,
	}

	slog.Debug("transcription finished",
		"file", req.InputFilePath,
		"model", size,
		"language", result.Language,
		"segments", len(segments),
		"took", time.Since(start))

	return result, nil
}

// joinSegments builds the transcript text: segment texts joined by single
// spaces, empty segments skipped, result trimmed.
func joinSegments(segments []model.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text == "" {
			continue
		}
		parts = append(parts, s.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
