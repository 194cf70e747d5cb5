package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/cliffhanger/pkg/session"
)

// Storage defines the interface for session persistence. Sessions are
// read-modify-written wholesale per request; the store provides no
// cross-request locking, so concurrent requests for the same key can
// overwrite each other (accepted design gap).
type Storage interface {
	// Ping tests the store connection.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error

	// SaveSession saves a session wholesale under the given identifier.
	SaveSession(ctx context.Context, id uuid.UUID, st *session.State) error

	// LoadSession retrieves a session by identifier.
	// Returns nil when the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.State, error)

	// DeleteSession removes a session by identifier.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// ResetSessions removes every stored session. Used by the --reset
	// startup flag.
	ResetSessions(ctx context.Context) (int, error)
}
