package services

import (
	"context"
	"fmt"
	"io"

	"meetflow/internal/api/v1/dto"
	"meetflow/internal/app/export"
	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
)

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	repo repository.MeetingRepository
}

// NewExportService creates a new export service
func NewExportService(repo repository.MeetingRepository) ExportService {
	return &ExportServiceImpl{
		repo: repo,
	}
}

// ExportMeetings streams an xlsx workbook of meetings to the writer
func (s *ExportServiceImpl) ExportMeetings(ctx context.Context, query dto.ExportQuery, writer io.Writer) error {
	var meetings []model.Meeting
	var err error
	if query.Status != "" {
		meetings, err = s.repo.ListByStatus(ctx, query.Status, query.Limit, 0)
	} else {
		meetings, err = s.repo.List(ctx, query.Limit, 0)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch meetings: %w", err)
	}

	return export.WriteExcel(meetings, writer)
}
