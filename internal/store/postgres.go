package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// pgPool is the subset of pgxpool.Pool the store uses; pgxmock
// satisfies it in tests.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	count      INTEGER NOT NULL,
	records    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, source string, records []model.Record) (*Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal records")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, source, count, records, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, source, len(records), payload, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert snapshot")
	}

	return &Snapshot{
		ID:        id,
		Source:    source,
		Count:     len(records),
		Records:   records,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, count, records, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`,
	)

	var snap Snapshot
	var payload []byte
	err := row.Scan(&snap.ID, &snap.Source, &snap.Count, &payload, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest snapshot")
	}

	if err := json.Unmarshal(payload, &snap.Records); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal records")
	}
	return &snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, source, count, created_at FROM snapshots ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.Count, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: iterate snapshots")
}
