package repository

import (
	"context"

	apperrors "meetflow/internal/app/errors"
	"meetflow/internal/app/model"
)

// ErrNotFound reports a missing meeting regardless of backend.
var ErrNotFound = apperrors.New("meeting not found")

// MeetingRepository persists pipeline results.
type MeetingRepository interface {
	Close() error

	Save(ctx context.Context, meeting *model.Meeting) error

	GetByID(ctx context.Context, id string) (*model.Meeting, error)

	// List returns meetings newest first.
	List(ctx context.Context, limit, offset int) ([]model.Meeting, error)

	// ListByStatus returns meetings with the given status, newest first.
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Meeting, error)

	// FindByHash returns the most recent meeting with the given audio hash,
	// or ErrNotFound.
	FindByHash(ctx context.Context, audioHash string) (*model.Meeting, error)

	CountByStatus(ctx context.Context) (map[string]int, error)
}
