package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"meetflow/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	MeetingService *MockMeetingService
	ModelService   *MockModelService
	StatsService   *MockStatsService
	ExportService  *MockExportService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		MeetingService: NewMockMeetingService(t),
		ModelService:   NewMockModelService(t),
		StatsService:   NewMockStatsService(t),
		ExportService:  NewMockExportService(t),
	}
}

// MockMeetingService is a mock implementation of MeetingService
type MockMeetingService struct {
	mock.Mock
}

func NewMockMeetingService(t *testing.T) *MockMeetingService {
	m := &MockMeetingService{}
	m.Test(t)
	return m
}

func (m *MockMeetingService) CreateFromUpload(ctx context.Context, form *dto.UploadMeetingForm, file io.Reader) (*dto.MeetingResponse, error) {
	args := m.Called(ctx, form, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MeetingResponse), args.Error(1)
}

func (m *MockMeetingService) GetMeeting(ctx context.Context, id string) (*dto.MeetingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MeetingResponse), args.Error(1)
}

func (m *MockMeetingService) GetTranscript(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockMeetingService) ListMeetings(ctx context.Context, query dto.ListMeetingsQuery) (*dto.PaginatedMeetingsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedMeetingsResponse), args.Error(1)
}

// MockModelService is a mock implementation of ModelService
type MockModelService struct {
	mock.Mock
}

func NewMockModelService(t *testing.T) *MockModelService {
	m := &MockModelService{}
	m.Test(t)
	return m
}

func (m *MockModelService) ListModels(ctx context.Context) (*dto.ModelListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ModelListResponse), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func NewMockStatsService(t *testing.T) *MockStatsService {
	m := &MockStatsService{}
	m.Test(t)
	return m
}

func (m *MockStatsService) GetSystemStats(ctx context.Context) (*dto.SystemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SystemStats), args.Error(1)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService(t *testing.T) *MockExportService {
	m := &MockExportService{}
	m.Test(t)
	return m
}

func (m *MockExportService) ExportMeetings(ctx context.Context, query dto.ExportQuery, writer io.Writer) error {
	args := m.Called(ctx, query, writer)
	return args.Error(0)
}
