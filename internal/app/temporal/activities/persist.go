package activities

import (
	"context"
	"os"

	"go.temporal.io/sdk/activity"

	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
	"meetflow/internal/app/storage"
)

// PersistRequest stores a finished meeting and optionally archives its audio.
type PersistRequest struct {
	Meeting   model.Meeting `json:"meeting"`
	AudioPath string        `json:"audio_path,omitempty"`
}

// PersistActivities writes meetings to the repository and object store.
type PersistActivities struct {
	repo    repository.MeetingRepository
	archive *storage.Archive
}

// NewPersistActivities creates a new instance of persistence activities.
// archive may be nil when no object store is configured.
func NewPersistActivities(repo repository.MeetingRepository, archive *storage.Archive) *PersistActivities {
	return &PersistActivities{repo: repo, archive: archive}
}

// SaveMeeting stores the meeting row. Retried attempts after a partial
// failure find the existing row and succeed without a duplicate insert.
func (p *PersistActivities) SaveMeeting(ctx context.Context, req PersistRequest) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Saving meeting", "meetingId", req.Meeting.ID, "status", req.Meeting.Status)

	if existing, err := p.repo.GetByID(ctx, req.Meeting.ID); err == nil && existing != nil {
		logger.Info("Meeting already saved", "meetingId", req.Meeting.ID)
		return req.Meeting.ID, nil
	}

	meeting := req.Meeting
	if err := p.repo.Save(ctx, &meeting); err != nil {
		logger.Error("Failed to save meeting", "error", err)
		return "", err
	}

	if p.archive != nil && req.AudioPath != "" {
		if _, err := os.Stat(req.AudioPath); err == nil {
			if err := p.archive.ArchiveMeeting(ctx, &meeting, req.AudioPath); err != nil {
				// Archival is best effort, the row is already durable.
				logger.Warn("Failed to archive meeting audio", "error", err)
			}
		}
	}

	return meeting.ID, nil
}
