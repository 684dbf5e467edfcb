package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	count      INTEGER NOT NULL,
	records    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, source string, records []model.Record) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal records")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, count, records, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, len(records), string(payload), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert snapshot")
	}

	return &Snapshot{
		ID:        id,
		Source:    source,
		Count:     len(records),
		Records:   records,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, count, records, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`,
	)

	var snap Snapshot
	var payload string
	err := row.Scan(&snap.ID, &snap.Source, &snap.Count, &payload, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest snapshot")
	}

	if err := json.Unmarshal([]byte(payload), &snap.Records); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal records")
	}
	return &snap, nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, count, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close() //nolint:errcheck

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.Count, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: iterate snapshots")
}
