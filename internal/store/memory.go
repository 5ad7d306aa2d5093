package store

import (
	"context"
	"sync"
)

// Write is one recorded Put on a Memory backend.
type Write struct {
	Key   string
	Value []byte
}

// Memory is an in-process Backend. It keeps every write so tests can check
// what was persisted and in which order.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes []Write
	fail   error
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Seed stores value under key without recording a write.
func (m *Memory) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// FailPuts makes every subsequent Put return err. Pass nil to recover.
func (m *Memory) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put implements Backend.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}
	v := append([]byte(nil), value...)
	m.data[key] = v
	m.writes = append(m.writes, Write{Key: key, Value: v})
	return nil
}

// Writes returns a copy of the write log.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}
