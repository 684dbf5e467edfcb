// Package store persists dataset snapshots so the dashboard can serve
// the last good dataset when both remote resources fail.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/peter890821/esg-eval-dashboard/internal/model"
)

// Snapshot is one persisted dataset load.
type Snapshot struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Count     int            `json:"count"`
	Records   []model.Record `json:"records,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store defines the snapshot persistence interface.
type Store interface {
	SaveSnapshot(ctx context.Context, source string, records []model.Record) (*Snapshot, error)
	// LatestSnapshot returns the most recent snapshot with its records,
	// or ErrNoSnapshot when none exists.
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	// ListSnapshots returns snapshot metadata, newest first, without
	// record payloads.
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)

	Migrate(ctx context.Context) error
	Close() error
}

// ErrNoSnapshot is returned when the store holds no snapshot yet.
var ErrNoSnapshot = eris.New("store: no snapshot")

// Open creates a Store for the configured driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
