package activities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/model"
	"meetflow/internal/app/transcriber"
)

// TranscribeRequest asks for a local recording to be transcribed.
type TranscribeRequest struct {
	MeetingID string `json:"meeting_id"`
	AudioPath string `json:"audio_path"`
	ModelSize string `json:"model_size"`
	Language  string `json:"language"`
}

// TranscribeResult carries the transcript back to the workflow.
type TranscribeResult struct {
	Text        string  `json:"text"`
	Language    string  `json:"language"`
	DurationSec float64 `json:"duration_sec"`
	Segments    int     `json:"segments"`
	ModelSize   string  `json:"model_size"`
}

// TranscribeActivities provides transcription activities backed by the local
// whisper engine.
type TranscribeActivities struct {
	transcriber transcriber.Transcriber
}

// NewTranscribeActivities creates a new instance of transcription activities
func NewTranscribeActivities(t transcriber.Transcriber) *TranscribeActivities {
	return &TranscribeActivities{transcriber: t}
}

// TranscribeMeeting runs whisper over the recording, heartbeating while the
// model works so long files do not trip the activity timeout.
func (a *TranscribeActivities) TranscribeMeeting(ctx context.Context, req TranscribeRequest) (TranscribeResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting transcription", "meetingId", req.MeetingID, "audioPath", req.AudioPath)

	activity.RecordHeartbeat(ctx, fmt.Sprintf("Processing meeting: %s", req.MeetingID))

	heartbeatTicker := time.NewTicker(10 * time.Second)
	defer heartbeatTicker.Stop()

	done := make(chan struct{})
	var result *model.TranscriptionResult
	var transcribeErr error

	go func() {
		result, transcribeErr = a.transcriber.Transcribe(ctx, transcriber.Request{
			InputFilePath: req.AudioPath,
			ModelSize:     req.ModelSize,
			Language:      req.Language,
		})
		close(done)
	}()

	for {
		select {
		case <-done:
			if transcribeErr != nil {
				logger.Error("Transcription failed", "error", transcribeErr)
				if errors.Is(transcribeErr, apperrors.ErrUnsupportedFormat) || errors.Is(transcribeErr, apperrors.ErrFileAccess) {
					// Bad input will not fix itself on retry.
					return TranscribeResult{}, temporal.NewNonRetryableApplicationError(
						transcribeErr.Error(), "InvalidInput", transcribeErr)
				}
				return TranscribeResult{}, transcribeErr
			}

			logger.Info("Transcription completed",
				"meetingId", req.MeetingID,
				"language", result.Language,
				"segments", len(result.Segments))

			return TranscribeResult{
				Text:        result.Text,
				Language:    result.Language,
				DurationSec: result.Duration.Seconds(),
				Segments:    len(result.Segments),
				ModelSize:   result.ModelSize,
			}, nil

		case <-heartbeatTicker.C:
			activity.RecordHeartbeat(ctx, fmt.Sprintf("Still processing meeting: %s", req.MeetingID))

		case <-ctx.Done():
			return TranscribeResult{}, ctx.Err()
		}
	}
}
