package pg

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
)

// TestPostgresRepositoryInterface verifies PostgresRepository implements
// MeetingRepository.
func TestPostgresRepositoryInterface(t *testing.T) {
	var _ repository.MeetingRepository = (*PostgresRepository)(nil)
}

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PostgresRepository{db: db}, mock
}

func meetingColumns() []string {
	return []string{"id", "title", "source_file", "audio_hash", "duration_sec",
		"language", "transcript", "summary", "action_items", "model_size",
		"analysis_model", "status", "error_detail", "created_at"}
}

func TestPostgresSave(t *testing.T) {
	repo, mock := newMockRepository(t)

	createdAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	meeting := &model.Meeting{
		ID:            "m-1",
		Title:         "Planning",
		SourceFile:    "planning.mp3",
		AudioHash:     "abc123",
		DurationSec:   120.5,
		Language:      "en",
		Transcript:    "Hello, this is a test",
		Summary:       "Scoped the next milestone.",
		ActionItems:   []model.ActionItem{{Task: "Write the RFC", Owner: "Kim"}},
		ModelSize:     "base",
		AnalysisModel: "llama-3.1-8b-instant",
		Status:        model.StatusCompleted,
		CreatedAt:     createdAt,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO meetings`)).
		WithArgs("m-1", "Planning", "planning.mp3", "abc123", 120.5, "en",
			"Hello, this is a test", "Scoped the next milestone.",
			`[{"task":"Write the RFC","owner":"Kim"}]`, "base",
			"llama-3.1-8b-instant", model.StatusCompleted, "", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), meeting)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	createdAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(meetingColumns()).
		AddRow("m-1", "Planning", "planning.mp3", "abc123", 120.5, "en",
			"Hello, this is a test", "Scoped the next milestone.",
			`[{"task":"Write the RFC","owner":"Kim"}]`, "base",
			"llama-3.1-8b-instant", model.StatusCompleted, "", createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM meetings WHERE id = $1`)).
		WithArgs("m-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Planning", got.Title)
	require.Len(t, got.ActionItems, 1)
	assert.Equal(t, model.ActionItem{Task: "Write the RFC", Owner: "Kim"}, got.ActionItems[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM meetings WHERE id = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByHash(t *testing.T) {
	repo, mock := newMockRepository(t)

	createdAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(meetingColumns()).
		AddRow("m-2", "Planning", "planning.mp3", "same-hash", 10.0, "en",
			"text", "summary", `[]`, "base", "", model.StatusTranscriptOnly, "", createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM meetings WHERE audio_hash = $1 ORDER BY created_at DESC LIMIT 1`)).
		WithArgs("same-hash").
		WillReturnRows(rows)

	got, err := repo.FindByHash(context.Background(), "same-hash")
	require.NoError(t, err)
	assert.Equal(t, "m-2", got.ID)
	assert.Empty(t, got.ActionItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByStatus(t *testing.T) {
	repo, mock := newMockRepository(t)

	createdAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(meetingColumns()).
		AddRow("m-3", "Retro", "retro.mp3", "h3", 15.0, "en",
			"text", "", `[]`, "base", "", model.StatusFailed, "whisper crashed", createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM meetings WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
		WithArgs(model.StatusFailed, 20, 0).
		WillReturnRows(rows)

	got, err := repo.ListByStatus(context.Background(), model.StatusFailed, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "whisper crashed", got[0].ErrorDetail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountByStatus(t *testing.T) {
	repo, mock := newMockRepository(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(model.StatusCompleted, 5).
		AddRow(model.StatusFailed, 1)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) FROM meetings GROUP BY status`)).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{model.StatusCompleted: 5, model.StatusFailed: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClose(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectClose()

	assert.NoError(t, repo.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
