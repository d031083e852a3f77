package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL DEFAULT '',
	source_file    TEXT NOT NULL DEFAULT '',
	audio_hash     TEXT NOT NULL DEFAULT '',
	duration_sec   DOUBLE PRECISION NOT NULL DEFAULT 0,
	language       TEXT NOT NULL DEFAULT '',
	transcript     TEXT NOT NULL DEFAULT '',
	summary        TEXT NOT NULL DEFAULT '',
	action_items   TEXT NOT NULL DEFAULT '[]',
	model_size     TEXT NOT NULL DEFAULT '',
	analysis_model TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT '',
	error_detail   TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_audio_hash ON meetings(audio_hash);
CREATE INDEX IF NOT EXISTS idx_meetings_status ON meetings(status);
CREATE INDEX IF NOT EXISTS idx_meetings_created_at ON meetings(created_at);
`

// Open connects to postgres and applies the schema.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}
