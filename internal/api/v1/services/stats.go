package services

import (
	"context"
	"fmt"

	"meetflow/internal/api/v1/dto"
	"meetflow/internal/app/repository"
)

// StatsServiceImpl implements the StatsService interface
type StatsServiceImpl struct {
	repo repository.MeetingRepository
}

// NewStatsService creates a new stats service
func NewStatsService(repo repository.MeetingRepository) StatsService {
	return &StatsServiceImpl{
		repo: repo,
	}
}

// GetSystemStats returns meeting counts grouped by pipeline outcome
func (s *StatsServiceImpl) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings: %w", err)
	}

	return dto.ToSystemStats(counts), nil
}
