package store

import "context"

// Well-known keys.
const (
	KeyTasks      = "timeline_tasks"
	KeyDailyTodos = "daily_todos"
	KeySeenGuide  = "timeline_seen_guide"
)

// Backend persists opaque snapshots by key.
type Backend interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}
