package transcriber

import (
	"context"

	"meetflow/internal/app/model"
)

// Request describes a single transcription run. Zero-valued fields fall
// back to the engine's configured defaults.
type Request struct {
	InputFilePath string
	ModelSize     string
	Language      string
}

// Transcriber turns an audio file into a transcript with timed segments
// and detected language.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*model.TranscriptionResult, error)
}
