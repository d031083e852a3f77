package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"meetflow/internal/app/model"
	"meetflow/internal/app/repository"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*PostgresRepository, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) Save(ctx context.Context, meeting *model.Meeting) error {
	items, err := json.Marshal(meeting.ActionItems)
	if err != nil {
		return fmt.Errorf("failed to encode action items: %w", err)
	}

	insertSQL := `INSERT INTO meetings (id, title, source_file, audio_hash, duration_sec, language, transcript, summary, action_items, model_size, analysis_model, status, error_detail, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err = r.db.ExecContext(ctx, insertSQL,
		meeting.ID, meeting.Title, meeting.SourceFile, meeting.AudioHash,
		meeting.DurationSec, meeting.Language, meeting.Transcript, meeting.Summary,
		string(items), meeting.ModelSize, meeting.AnalysisModel, meeting.Status,
		meeting.ErrorDetail, meeting.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	query := selectColumns + ` FROM meetings WHERE id = $1`
	return scanMeeting(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByHash(ctx context.Context, audioHash string) (*model.Meeting, error) {
	query := selectColumns + ` FROM meetings WHERE audio_hash = $1 ORDER BY created_at DESC LIMIT 1`
	return scanMeeting(r.db.QueryRowContext(ctx, query, audioHash))
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]model.Meeting, error) {
	query := selectColumns + ` FROM meetings ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	meetings := make([]model.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeetingRow(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *meeting)
	}
	return meetings, rows.Err()
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Meeting, error) {
	query := selectColumns + ` FROM meetings WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	meetings := make([]model.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeetingRow(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *meeting)
	}
	return meetings, rows.Err()
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM meetings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

const selectColumns = `SELECT id, title, source_file, audio_hash, duration_sec, language, transcript, summary, action_items, model_size, analysis_model, status, error_detail, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row *sql.Row) (*model.Meeting, error) {
	meeting, err := scanMeetingRow(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return meeting, err
}

func scanMeetingRow(row rowScanner) (*model.Meeting, error) {
	var m model.Meeting
	var items string
	err := row.Scan(&m.ID, &m.Title, &m.SourceFile, &m.AudioHash, &m.DurationSec,
		&m.Language, &m.Transcript, &m.Summary, &items, &m.ModelSize,
		&m.AnalysisModel, &m.Status, &m.ErrorDetail, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("db scan failed: %w", err)
	}
	if items != "" {
		if err := json.Unmarshal([]byte(items), &m.ActionItems); err != nil {
			return nil, fmt.Errorf("failed to decode action items: %w", err)
		}
	}
	return &m, nil
}
