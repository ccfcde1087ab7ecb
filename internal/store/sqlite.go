package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS plan_snapshots (
	snapshot_key TEXT PRIMARY KEY,
	payload_json TEXT NOT NULL,
	saved_at INTEGER NOT NULL
)`

// SQLite stores snapshots in a SQLite database keyed by name.
type SQLite struct {
	sqlDB *sql.DB
	key   string
}

// OpenSQLite opens the database at path and creates the snapshot table.
func OpenSQLite(ctx context.Context, path, key string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("storage key is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, createSnapshotsTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLite{sqlDB: sqlDB, key: key}, nil
}

// Load returns the snapshot saved under the store's key.
func (s *SQLite) Load(ctx context.Context) (*Snapshot, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload_json FROM plan_snapshots WHERE snapshot_key = ?`, s.key)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// Save upserts the snapshot under the store's key.
func (s *SQLite) Save(ctx context.Context, snapshot Snapshot) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	snapshot = prepare(snapshot)
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO plan_snapshots (snapshot_key, payload_json, saved_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(snapshot_key) DO UPDATE SET
		    payload_json = excluded.payload_json,
		    saved_at = excluded.saved_at`,
		s.key, string(payload), snapshot.SavedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying SQLite connection.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
