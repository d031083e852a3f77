package activities

import (
	"context"

	"go.temporal.io/sdk/activity"

	"meetflow/internal/app/analyzer"
	"meetflow/internal/app/model"
)

// AnalyzeRequest carries a transcript to the hosted language model.
type AnalyzeRequest struct {
	MeetingID  string `json:"meeting_id"`
	Transcript string `json:"transcript"`
}

// AnalyzeResult is the structured summary produced for a transcript.
type AnalyzeResult struct {
	Summary     string             `json:"summary"`
	ActionItems []model.ActionItem `json:"action_items"`
	Model       string             `json:"model"`
	Degraded    bool               `json:"degraded"`
}

// AnalyzeActivities provides analysis activities. Candidate model fallback
// happens inside the analyzer, so one activity attempt walks the whole chain.
type AnalyzeActivities struct {
	analyzer analyzer.Analyzer
}

// NewAnalyzeActivities creates a new instance of analysis activities
func NewAnalyzeActivities(a analyzer.Analyzer) *AnalyzeActivities {
	return &AnalyzeActivities{analyzer: a}
}

// AnalyzeTranscript summarizes the transcript and extracts action items.
func (a *AnalyzeActivities) AnalyzeTranscript(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting analysis", "meetingId", req.MeetingID, "transcriptChars", len(req.Transcript))

	result, err := a.analyzer.Analyze(ctx, req.Transcript)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		return AnalyzeResult{}, err
	}

	logger.Info("Analysis completed",
		"meetingId", req.MeetingID,
		"model", result.Model,
		"actionItems", len(result.ActionItems),
		"degraded", result.Degraded)

	return AnalyzeResult{
		Summary:     result.Summary,
		ActionItems: result.ActionItems,
		Model:       result.Model,
		Degraded:    result.Degraded,
	}, nil
}
