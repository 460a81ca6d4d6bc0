// internal/pkg/session/store.go
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no record exists for the session id.
var ErrNotFound = errors.New("session not found")

// Store is the TTL-bounded persistence contract for session records.
//
// Exists is the sole expiry oracle: a session is expired exactly when its
// record is absent from the store. Exists fails closed: any backend error
// reads as "does not exist" so that connectivity loss never extends the
// life of a stale session.
type Store interface {
	Exists(ctx context.Context, sessionID string) bool
	Get(ctx context.Context, sessionID string) (map[string]any, error)
	Put(ctx context.Context, sessionID string, data map[string]any, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
