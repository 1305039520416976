package interfaces

import (
	"context"

	"github.com/bobmcallan/pulse/internal/models"
)

// StorageManager coordinates the storage areas.
type StorageManager interface {
	SettingsStore() SettingsStore
	CacheStore() CacheStore
	Close() error
}

// SettingsStore persists the durable UI state as plain key-value pairs.
type SettingsStore interface {
	LoadUIState(ctx context.Context) (models.UIState, error)
	SaveUIState(ctx context.Context, state models.UIState) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CacheStore persists fetched payloads keyed by fetch parameters.
type CacheStore interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, entry *models.CacheEntry) error
	Delete(ctx context.Context, key string) error
	Purge(ctx context.Context) (int, error)
}
