package storage

import (
	"context"
	"sync"
)

// Memory keeps slots in process memory
type Memory struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

// Get returns the slot value
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

// Set replaces the slot value
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

// Delete removes the slot
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }
