package model

import "time"

// Meeting status values persisted in the meetings table.
const (
	StatusCompleted      = "completed"
	StatusTranscriptOnly = "transcript_only"
	StatusFailed         = "failed"
)

// Meeting is one processed recording: the transcript plus whatever the
// analysis stage produced for it.
type Meeting struct {
	ID            string
	Title         string
	SourceFile    string
	AudioHash     string
	DurationSec   float64
	Language      string
	Transcript    string
	Summary       string
	ActionItems   []ActionItem
	ModelSize     string
	AnalysisModel string
	Status        string
	ErrorDetail   string
	CreatedAt     time.Time
}

// ActionItem is a single follow-up extracted from a meeting. Owner is never
// empty; when the model omits one it is set to OwnerUnassigned.
type ActionItem struct {
	Task  string `json:"task"`
	Owner string `json:"owner"`
}

// OwnerUnassigned is the owner recorded for action items without one.
const OwnerUnassigned = "unassigned"

// AnalysisResult is the structured output of the analysis stage.
type AnalysisResult struct {
	Summary     string
	ActionItems []ActionItem
	// Model is the candidate that produced the result.
	Model string
	// Degraded is set when the model answered outside the schema and the raw
	// content was kept as the summary.
	Degraded bool
}

// Segment is one timed slice of a transcription.
type Segment struct {
	ID    int
	Start time.Duration
	End   time.Duration
	Text  string
}

// TranscriptionResult carries everything the whisper stage knows about one
// recording.
type TranscriptionResult struct {
	// Segments in playback order.
	Segments []Segment
	// Text is the segment texts joined by single spaces, trimmed.
	Text string
	// Language detected by whisper, ISO 639-1.
	Language string
	// Duration of the source audio.
	Duration  time.Duration
	ModelSize string
}
