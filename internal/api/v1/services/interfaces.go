package services

import (
	"context"
	"io"

	"meetflow/internal/api/v1/dto"
)

// MeetingService defines the interface for meeting pipeline operations
type MeetingService interface {
	CreateFromUpload(ctx context.Context, form *dto.UploadMeetingForm, file io.Reader) (*dto.MeetingResponse, error)
	GetMeeting(ctx context.Context, id string) (*dto.MeetingResponse, error)
	GetTranscript(ctx context.Context, id string) (string, error)
	ListMeetings(ctx context.Context, query dto.ListMeetingsQuery) (*dto.PaginatedMeetingsResponse, error)
}

// ModelService defines the interface for whisper model catalog operations
type ModelService interface {
	ListModels(ctx context.Context) (*dto.ModelListResponse, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	GetSystemStats(ctx context.Context) (*dto.SystemStats, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	ExportMeetings(ctx context.Context, query dto.ExportQuery, writer io.Writer) error
}
