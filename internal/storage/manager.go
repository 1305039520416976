// Package storage provides the top-level StorageManager coordinating the
// settings KV and the payload cache, both backed by one BadgerHold area.
package storage

import (
	"fmt"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
	"github.com/bobmcallan/pulse/internal/storage/badger"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	store    *badger.Store
	settings interfaces.SettingsStore
	cache    interfaces.CacheStore
	logger   *common.Logger
}

// NewManager creates a new StorageManager.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().
		Str("path", config.Storage.Path).
		Msg("Storage manager initialized")

	return &Manager{
		store:    store,
		settings: badger.NewSettingsStore(store, logger),
		cache:    badger.NewCacheStore(store, logger),
		logger:   logger,
	}, nil
}

func (m *Manager) SettingsStore() interfaces.SettingsStore {
	return m.settings
}

func (m *Manager) CacheStore() interfaces.CacheStore {
	return m.cache
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}
