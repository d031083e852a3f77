package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	apierrors "meetflow/internal/api/errors"
	"meetflow/internal/api/v1/dto"
	"meetflow/internal/app/model"
	"meetflow/internal/app/pipeline"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/storage"
)

// Presigned audio links outlive a page reload but not a shared bookmark.
const audioURLTTL = time.Hour

// PipelineRunner runs the meeting pipeline on uploaded audio.
type PipelineRunner interface {
	ProcessUpload(ctx context.Context, upload pipeline.Upload) (*model.Meeting, error)
}

// MeetingServiceImpl implements the MeetingService interface
type MeetingServiceImpl struct {
	runner  PipelineRunner
	repo    repository.MeetingRepository
	archive *storage.Archive
}

// NewMeetingService creates a new meeting service. archive may be nil when
// no object store is configured; audio links are then omitted.
func NewMeetingService(runner PipelineRunner, repo repository.MeetingRepository, archive *storage.Archive) MeetingService {
	return &MeetingServiceImpl{
		runner:  runner,
		repo:    repo,
		archive: archive,
	}
}

// CreateFromUpload spools the upload through the pipeline and returns the
// stored meeting. A meeting whose analysis failed still comes back with
// status transcript_only rather than an error.
func (s *MeetingServiceImpl) CreateFromUpload(ctx context.Context, form *dto.UploadMeetingForm, file io.Reader) (*dto.MeetingResponse, error) {
	meeting, err := s.runner.ProcessUpload(ctx, pipeline.Upload{
		FileName:     form.FileName,
		Reader:       file,
		Title:        form.Title,
		ModelSize:    form.ModelSize,
		Language:     form.Language,
		SkipAnalysis: form.SkipAnalysis,
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToMeetingResponse(meeting)
	s.attachAudioURL(ctx, meeting, &resp)
	return &resp, nil
}

// GetMeeting returns a stored meeting by ID
func (s *MeetingServiceImpl) GetMeeting(ctx context.Context, id string) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierrors.NewNotFoundError("meeting")
		}
		return nil, err
	}

	resp := dto.ToMeetingResponse(meeting)
	s.attachAudioURL(ctx, meeting, &resp)
	return &resp, nil
}

// GetTranscript returns the plain transcript text of a meeting
func (s *MeetingServiceImpl) GetTranscript(ctx context.Context, id string) (string, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apierrors.NewNotFoundError("meeting")
		}
		return "", err
	}
	return meeting.Transcript, nil
}

// ListMeetings returns a page of meetings, newest first
func (s *MeetingServiceImpl) ListMeetings(ctx context.Context, query dto.ListMeetingsQuery) (*dto.PaginatedMeetingsResponse, error) {
	offset := (query.Page - 1) * query.Limit

	var meetings []model.Meeting
	var err error
	if query.Status != "" {
		meetings, err = s.repo.ListByStatus(ctx, query.Status, query.Limit, offset)
	} else {
		meetings, err = s.repo.List(ctx, query.Limit, offset)
	}
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	if query.Status != "" {
		total = counts[query.Status]
	} else {
		for _, n := range counts {
			total += n
		}
	}

	totalPages := (total + query.Limit - 1) / query.Limit

	return &dto.PaginatedMeetingsResponse{
		Meetings: dto.ToMeetingSummaries(meetings),
		Pagination: dto.PaginationResponse{
			Page:       query.Page,
			Limit:      query.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    query.Page < totalPages,
			HasPrev:    query.Page > 1,
		},
	}, nil
}

func (s *MeetingServiceImpl) attachAudioURL(ctx context.Context, meeting *model.Meeting, resp *dto.MeetingResponse) {
	if s.archive == nil {
		return
	}
	url, err := s.archive.PresignedAudioURL(ctx, meeting, audioURLTTL)
	if err != nil {
		slog.Warn("could not presign audio url", "meeting", meeting.ID, "error", err)
		return
	}
	resp.AudioURL = url
}
