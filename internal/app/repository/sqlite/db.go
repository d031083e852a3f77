package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS meetings (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL DEFAULT '',
	source_file    TEXT NOT NULL DEFAULT '',
	audio_hash     TEXT NOT NULL DEFAULT '',
	duration_sec   REAL NOT NULL DEFAULT 0,
	language       TEXT NOT NULL DEFAULT '',
	transcript     TEXT NOT NULL DEFAULT '',
	summary        TEXT NOT NULL DEFAULT '',
	action_items   TEXT NOT NULL DEFAULT '[]',
	model_size     TEXT NOT NULL DEFAULT '',
	analysis_model TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL DEFAULT '',
	error_detail   TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_audio_hash ON meetings(audio_hash);
CREATE INDEX IF NOT EXISTS idx_meetings_status ON meetings(status);
CREATE INDEX IF NOT EXISTS idx_meetings_created_at ON meetings(created_at);
`

// Open opens (and creates, if needed) the sqlite database file and applies
// the schema.
func Open(dbFilePath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbFilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}
