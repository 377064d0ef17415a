// Package storage provides named string slots, the server-side stand-in for
// browser local storage. Every driver is safe for concurrent use.
package storage

import (
	"context"
	"fmt"
)

// Slot keys used by the site
const (
	ProjectsKey    = "kv-project-cards"
	ThemeModeKey   = "kv-portfolio-theme"
	ThemeCustomKey = "kv-portfolio-custom-theme"
)

// Driver names accepted by Open
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// KV is a string key-value slot store
type KV interface {
	// Get returns the slot value and whether the slot exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the slot value
	Set(ctx context.Context, key, value string) error
	// Delete removes the slot; removing a missing slot is not an error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the KV driver named by driver, rooted at path
func Open(ctx context.Context, driver, path string) (KV, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(path)
	case DriverSQLite:
		return NewSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}
