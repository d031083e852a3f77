package workflows

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"meetflow/internal/app/model"
	"meetflow/internal/app/temporal/activities"
)

// MeetingPipelineRequest is the input for a meeting processing run.
type MeetingPipelineRequest struct {
	AudioPath    string `json:"audio_path"`
	Title        string `json:"title"`
	ModelSize    string `json:"model_size"`
	Language     string `json:"language"`
	SkipAnalysis bool   `json:"skip_analysis"`
}

// MeetingPipelineResult reports what a run produced.
type MeetingPipelineResult struct {
	MeetingID      string        `json:"meeting_id"`
	Status         string        `json:"status"`
	Language       string        `json:"language"`
	AnalysisModel  string        `json:"analysis_model,omitempty"`
	Degraded       bool          `json:"degraded,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Error          string        `json:"error,omitempty"`
}

// MeetingPipelineWorkflow runs transcription, analysis, and persistence for
// one recording. Analysis failures do not fail the workflow: the meeting is
// stored as transcript_only and the run still succeeds.
func MeetingPipelineWorkflow(ctx workflow.Context, req MeetingPipelineRequest) (MeetingPipelineResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting meeting pipeline workflow", "audioPath", req.AudioPath)

	startTime := workflow.Now(ctx)

	var meetingID string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return uuid.NewString()
	}).Get(&meetingID); err != nil {
		return MeetingPipelineResult{}, err
	}

	sourceName := filepath.Base(req.AudioPath)
	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	}

	meeting := model.Meeting{
		ID:         meetingID,
		Title:      title,
		SourceFile: sourceName,
		ModelSize:  req.ModelSize,
		Language:   req.Language,
		CreatedAt:  startTime,
	}

	transcribeCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    100 * time.Second,
			MaximumAttempts:    3,
		},
	})

	var transcription activities.TranscribeResult
	err := workflow.ExecuteActivity(transcribeCtx, "TranscribeMeeting", activities.TranscribeRequest{
		MeetingID: meetingID,
		AudioPath: req.AudioPath,
		ModelSize: req.ModelSize,
		Language:  req.Language,
	}).Get(transcribeCtx, &transcription)
	if err != nil {
		logger.Error("Transcription failed", "error", err)
		meeting.Status = model.StatusFailed
		meeting.ErrorDetail = err.Error()
		if perr := persistMeeting(ctx, meeting, ""); perr != nil {
			logger.Error("Failed to record failed meeting", "error", perr)
		}
		return MeetingPipelineResult{
			MeetingID:      meetingID,
			Status:         model.StatusFailed,
			ProcessingTime: workflow.Now(ctx).Sub(startTime),
			Error:          err.Error(),
		}, err
	}

	meeting.Transcript = transcription.Text
	meeting.Language = transcription.Language
	meeting.DurationSec = transcription.DurationSec
	meeting.ModelSize = transcription.ModelSize

	switch {
	case transcription.Text == "":
		meeting.Status = model.StatusTranscriptOnly
		meeting.ErrorDetail = "no speech detected"
	case req.SkipAnalysis:
		meeting.Status = model.StatusTranscriptOnly
	default:
		analyzeCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: 5 * time.Minute,
			RetryPolicy: &temporal.RetryPolicy{
				InitialInterval:    time.Second,
				BackoffCoefficient: 2.0,
				MaximumAttempts:    2,
			},
		})

		var analysis activities.AnalyzeResult
		err = workflow.ExecuteActivity(analyzeCtx, "AnalyzeTranscript", activities.AnalyzeRequest{
			MeetingID:  meetingID,
			Transcript: transcription.Text,
		}).Get(analyzeCtx, &analysis)
		if err != nil {
			logger.Warn("Analysis failed, keeping transcript", "error", err)
			meeting.Status = model.StatusTranscriptOnly
			meeting.ErrorDetail = err.Error()
		} else {
			meeting.Status = model.StatusCompleted
			meeting.Summary = analysis.Summary
			meeting.ActionItems = analysis.ActionItems
			meeting.AnalysisModel = analysis.Model
			if analysis.Degraded {
				meeting.ErrorDetail = "analysis response was not valid JSON"
			}
		}
	}

	if err := persistMeeting(ctx, meeting, req.AudioPath); err != nil {
		logger.Error("Failed to save meeting", "error", err)
		return MeetingPipelineResult{
			MeetingID:      meetingID,
			Status:         meeting.Status,
			Language:       meeting.Language,
			ProcessingTime: workflow.Now(ctx).Sub(startTime),
			Error:          err.Error(),
		}, err
	}

	result := MeetingPipelineResult{
		MeetingID:      meetingID,
		Status:         meeting.Status,
		Language:       meeting.Language,
		AnalysisModel:  meeting.AnalysisModel,
		Degraded:       meeting.Status == model.StatusCompleted && meeting.ErrorDetail != "",
		ProcessingTime: workflow.Now(ctx).Sub(startTime),
	}

	logger.Info("Meeting pipeline completed",
		"meetingId", meetingID,
		"status", meeting.Status,
		"duration", result.ProcessingTime)

	return result, nil
}

func persistMeeting(ctx workflow.Context, meeting model.Meeting, audioPath string) error {
	persistCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	})

	var savedID string
	return workflow.ExecuteActivity(persistCtx, "SaveMeeting", activities.PersistRequest{
		Meeting:   meeting,
		AudioPath: audioPath,
	}).Get(persistCtx, &savedID)
}
