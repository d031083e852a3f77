package dto

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"meetflow/internal/api/errors"
	"meetflow/internal/app/audio"
	"meetflow/internal/app/model"
	"meetflow/internal/app/transcriber/whisper"
)

// UploadMeetingForm carries the multipart fields of a meeting upload.
// The audio file itself is read from the "file" part by the handler.
type UploadMeetingForm struct {
	Title        string `form:"title" binding:"omitempty,max=200"`
	ModelSize    string `form:"model_size"`
	Language     string `form:"language" binding:"omitempty,max=8"`
	SkipAnalysis bool   `form:"skip_analysis"`

	// Set by the handler from the multipart file header.
	FileName string `form:"-"`
}

// Validate performs domain-specific validation. An unsupported container
// format rejects the request outright; field problems collect into a
// validation error.
func (r *UploadMeetingForm) Validate() error {
	// Extensionless uploads are spooled as .mp3 further down the pipeline.
	if ext := strings.ToLower(filepath.Ext(r.FileName)); ext != "" && !audio.IsSupportedFormat(ext) {
		return errors.NewBadRequestError(
			fmt.Sprintf("Unsupported audio format %q, expected one of %s", ext, strings.Join(audio.SupportedFormats, ", ")))
	}

	validationErrors := make(map[string]string)

	if r.ModelSize != "" && !whisper.IsValidSize(r.ModelSize) {
		validationErrors["model_size"] = "unknown whisper model size"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid meeting upload", validationErrors)
	}

	return nil
}

// ActionItemResponse represents one follow-up task from a meeting
type ActionItemResponse struct {
	Task  string `json:"task"`
	Owner string `json:"owner"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	SourceFile    string               `json:"source_file"`
	DurationSec   float64              `json:"duration_sec,omitempty"`
	Language      string               `json:"language,omitempty"`
	Transcript    string               `json:"transcript,omitempty"`
	Summary       string               `json:"summary,omitempty"`
	ActionItems   []ActionItemResponse `json:"action_items"`
	ModelSize     string               `json:"model_size,omitempty"`
	AnalysisModel string               `json:"analysis_model,omitempty"`
	Status        string               `json:"status"`
	Degraded      bool                 `json:"degraded,omitempty"`
	ErrorDetail   string               `json:"error_detail,omitempty"`
	AudioURL      string               `json:"audio_url,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// MeetingSummaryResponse is the list variant without the full transcript
type MeetingSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DurationSec float64   `json:"duration_sec,omitempty"`
	Language    string    `json:"language,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	ActionItems int       `json:"action_items"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMeetingsQuery represents query parameters for listing meetings
type ListMeetingsQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=completed transcript_only failed"`
}

// PaginatedMeetingsResponse represents a paginated list of meetings
type PaginatedMeetingsResponse struct {
	Meetings   []MeetingSummaryResponse `json:"meetings"`
	Pagination PaginationResponse       `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ToMeetingResponse converts a model to response DTO
func ToMeetingResponse(m *model.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		SourceFile:    m.SourceFile,
		DurationSec:   m.DurationSec,
		Language:      m.Language,
		Transcript:    m.Transcript,
		Summary:       m.Summary,
		ActionItems:   ToActionItemResponses(m.ActionItems),
		ModelSize:     m.ModelSize,
		AnalysisModel: m.AnalysisModel,
		Status:        m.Status,
		Degraded:      m.Status == model.StatusCompleted && m.ErrorDetail != "",
		ErrorDetail:   m.ErrorDetail,
		CreatedAt:     m.CreatedAt,
	}
}

// ToActionItemResponses converts action items to response DTOs
func ToActionItemResponses(items []model.ActionItem) []ActionItemResponse {
	return lo.Map(items, func(item model.ActionItem, _ int) ActionItemResponse {
		return ActionItemResponse{Task: item.Task, Owner: item.Owner}
	})
}

// ToMeetingSummaries converts meetings to list DTOs
func ToMeetingSummaries(meetings []model.Meeting) []MeetingSummaryResponse {
	return lo.Map(meetings, func(m model.Meeting, _ int) MeetingSummaryResponse {
		return MeetingSummaryResponse{
			ID:          m.ID,
			Title:       m.Title,
			DurationSec: m.DurationSec,
			Language:    m.Language,
			Summary:     m.Summary,
			ActionItems: len(m.ActionItems),
			Status:      m.Status,
			CreatedAt:   m.CreatedAt,
		}
	})
}
