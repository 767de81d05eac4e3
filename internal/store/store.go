// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
)

// DefaultListLimit is used when ListActivity is called with a non-positive limit.
const DefaultListLimit = 50

// MaxListLimit caps ListActivity.
const MaxListLimit = 500

// Repository defines the interface for persisting gateway activity.
type Repository interface {
	// RecordActivity inserts entry and sets its ID. A zero CreatedAt is
	// replaced with the current time.
	RecordActivity(ctx context.Context, entry *domain.ActivityEntry) error

	// ListActivity returns the most recent entries, newest first.
	ListActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)

	// PruneActivity deletes entries created before cutoff and returns how many were removed.
	PruneActivity(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
