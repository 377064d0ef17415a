package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// File keeps all slots in one JSON object on disk
type File struct {
	path string

	mu    sync.Mutex
	slots map[string]string
}

// NewFile opens or creates the slot file at path
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file storage requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	f := &File{path: path, slots: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.slots); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Get returns the slot value
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.slots[key]
	return v, ok, nil
}

// Set replaces the slot value and flushes the file
func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.slots[key]
	f.slots[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.slots[key] = prev
		} else {
			delete(f.slots, key)
		}
		return err
	}
	return nil
}

// Delete removes the slot and flushes the file
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.slots[key]
	if !had {
		return nil
	}
	delete(f.slots, key)
	if err := f.flush(); err != nil {
		f.slots[key] = prev
		return err
	}
	return nil
}

// Close is a no-op; every write is flushed
func (f *File) Close() error { return nil }

// flush replaces the file atomically with the current slots
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slots: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}
