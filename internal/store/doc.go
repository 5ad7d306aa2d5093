// Package store provides the key/value persistence backends behind the task
// store.
//
// The task store writes one full snapshot per mutation under a fixed key; a
// backend only has to get and put opaque blobs. Two backends are provided:
//   - SQLite: durable, file-backed (or ":memory:")
//   - Memory: map-backed test double that records every write
//
// # Keys
//
//   - timeline_tasks: canonical JSON array of tasks (owned by the task store)
//   - daily_todos: date-keyed todo lists (owned by the daily-todo view; never
//     read or migrated here)
//   - timeline_seen_guide: onboarding flag
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - One open connection: SQLite has a single writer
//
// Schema changes are applied through PRAGMA user_version migrations on Open.
package store
