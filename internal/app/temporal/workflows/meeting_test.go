package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"meetflow/internal/app/model"
	"meetflow/internal/app/temporal/activities"
)

func newTestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(MeetingPipelineWorkflow)
	env.RegisterActivity(activities.NewTranscribeActivities(nil))
	env.RegisterActivity(activities.NewAnalyzeActivities(nil))
	env.RegisterActivity(activities.NewPersistActivities(nil, nil))
	return env
}

func goodTranscription() activities.TranscribeResult {
	return activities.TranscribeResult{
		Text:        "We agreed to ship the beta on Friday.",
		Language:    "en",
		DurationSec: 42.5,
		Segments:    3,
		ModelSize:   "base",
	}
}

func TestMeetingPipelineWorkflowCompletes(t *testing.T) {
	env := newTestEnv(t)

	var saved activities.PersistRequest
	env.OnActivity("TranscribeMeeting", mock.Anything, mock.Anything).Return(goodTranscription(), nil)
	env.OnActivity("AnalyzeTranscript", mock.Anything, mock.Anything).Return(activities.AnalyzeResult{
		Summary:     "Beta ships Friday.",
		ActionItems: []model.ActionItem{{Task: "Cut the release branch", Owner: "Dana"}},
		Model:       "llama-3.1-8b-instant",
	}, nil)
	env.OnActivity("SaveMeeting", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req activities.PersistRequest) (string, error) {
			saved = req
			return req.Meeting.ID, nil
		})

	env.ExecuteWorkflow(MeetingPipelineWorkflow, MeetingPipelineRequest{
		AudioPath: "/recordings/standup.mp3",
		ModelSize: "base",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result MeetingPipelineResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, model.StatusCompleted, result.Status)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, "llama-3.1-8b-instant", result.AnalysisModel)
	assert.False(t, result.Degraded)
	assert.NotEmpty(t, result.MeetingID)

	assert.Equal(t, result.MeetingID, saved.Meeting.ID)
	assert.Equal(t, "standup", saved.Meeting.Title)
	assert.Equal(t, "Beta ships Friday.", saved.Meeting.Summary)
	assert.Equal(t, "/recordings/standup.mp3", saved.AudioPath)
}

func TestMeetingPipelineWorkflowKeepsTranscriptWhenAnalysisFails(t *testing.T) {
	env := newTestEnv(t)

	var saved activities.PersistRequest
	env.OnActivity("TranscribeMeeting", mock.Anything, mock.Anything).Return(goodTranscription(), nil)
	env.OnActivity("AnalyzeTranscript", mock.Anything, mock.Anything).Return(activities.AnalyzeResult{},
		temporal.NewNonRetryableApplicationError("analysis unavailable", "AnalysisUnavailable", nil))
	env.OnActivity("SaveMeeting", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req activities.PersistRequest) (string, error) {
			saved = req
			return req.Meeting.ID, nil
		})

	env.ExecuteWorkflow(MeetingPipelineWorkflow, MeetingPipelineRequest{
		AudioPath: "/recordings/standup.mp3",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError(), "analysis failure must not fail the workflow")

	var result MeetingPipelineResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, model.StatusTranscriptOnly, result.Status)

	assert.Equal(t, model.StatusTranscriptOnly, saved.Meeting.Status)
	assert.Equal(t, goodTranscription().Text, saved.Meeting.Transcript)
	assert.Contains(t, saved.Meeting.ErrorDetail, "analysis unavailable")
}

func TestMeetingPipelineWorkflowRecordsTranscriptionFailure(t *testing.T) {
	env := newTestEnv(t)

	var saved activities.PersistRequest
	env.OnActivity("TranscribeMeeting", mock.Anything, mock.Anything).Return(activities.TranscribeResult{},
		temporal.NewNonRetryableApplicationError("unsupported audio format", "InvalidInput", nil))
	env.OnActivity("SaveMeeting", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req activities.PersistRequest) (string, error) {
			saved = req
			return req.Meeting.ID, nil
		})

	env.ExecuteWorkflow(MeetingPipelineWorkflow, MeetingPipelineRequest{
		AudioPath: "/recordings/bad.mp3",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())

	assert.Equal(t, model.StatusFailed, saved.Meeting.Status)
	assert.Contains(t, saved.Meeting.ErrorDetail, "unsupported audio format")
	assert.Empty(t, saved.AudioPath, "failed runs do not archive audio")
	env.AssertNotCalled(t, "AnalyzeTranscript", mock.Anything, mock.Anything)
}

func TestMeetingPipelineWorkflowSkipsAnalysisForEmptyTranscript(t *testing.T) {
	env := newTestEnv(t)

	var saved activities.PersistRequest
	env.OnActivity("TranscribeMeeting", mock.Anything, mock.Anything).Return(activities.TranscribeResult{
		Language:  "en",
		ModelSize: "base",
	}, nil)
	env.OnActivity("SaveMeeting", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req activities.PersistRequest) (string, error) {
			saved = req
			return req.Meeting.ID, nil
		})

	env.ExecuteWorkflow(MeetingPipelineWorkflow, MeetingPipelineRequest{
		AudioPath: "/recordings/silence.mp3",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	assert.Equal(t, model.StatusTranscriptOnly, saved.Meeting.Status)
	assert.Equal(t, "no speech detected", saved.Meeting.ErrorDetail)
	env.AssertNotCalled(t, "AnalyzeTranscript", mock.Anything, mock.Anything)
}

func TestMeetingPipelineWorkflowSkipAnalysisFlag(t *testing.T) {
	env := newTestEnv(t)

	env.OnActivity("TranscribeMeeting", mock.Anything, mock.Anything).Return(goodTranscription(), nil)
	env.OnActivity("SaveMeeting", mock.Anything, mock.Anything).Return("id", nil)

	env.ExecuteWorkflow(MeetingPipelineWorkflow, MeetingPipelineRequest{
		AudioPath:    "/recordings/standup.mp3",
		SkipAnalysis: true,
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result MeetingPipelineResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, model.StatusTranscriptOnly, result.Status)
	env.AssertNotCalled(t, "AnalyzeTranscript", mock.Anything, mock.Anything)
}
