package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL DEFAULT '',
		department         TEXT NOT NULL DEFAULT '',
		seat_number        TEXT NOT NULL DEFAULT '',
		email              TEXT NOT NULL DEFAULT '',
		phone              TEXT NOT NULL DEFAULT '',
		avatar             TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'not_working'
		                   CHECK (status IN ('present', 'absent', 'working', 'idle', 'not_working')),
		last_nfc_scan      TEXT,
		motion_activity    BOOLEAN NOT NULL DEFAULT FALSE,
		total_working_time TEXT NOT NULL DEFAULT '',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id          TEXT PRIMARY KEY,
		seq         BIGSERIAL,
		time        TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL CHECK (type IN ('NFC', 'MOTION')),
		staff_id    TEXT NOT NULL DEFAULT '',
		staff_name  TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		location    TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS activity_logs_created_at_idx ON activity_logs (created_at DESC, seq DESC)`,
	`CREATE TABLE IF NOT EXISTS bots (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		nfc        BOOLEAN NOT NULL DEFAULT FALSE,
		motion     BOOLEAN NOT NULL DEFAULT FALSE,
		avatar     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the tables the store needs if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
