package badger

import (
	"context"
	"fmt"
	"strings"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/models"
)

type cacheStore struct {
	store  *Store
	logger *common.Logger
}

// NewCacheStore creates a CacheStore backed by BadgerHold.
func NewCacheStore(store *Store, logger *common.Logger) *cacheStore {
	return &cacheStore{store: store, logger: logger}
}

func (s *cacheStore) Get(_ context.Context, key string) (*models.CacheEntry, error) {
	var entry models.CacheEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil // miss, not an error
		}
		return nil, fmt.Errorf("failed to get cache entry '%s': %w", key, err)
	}
	return &entry, nil
}

func (s *cacheStore) Put(_ context.Context, entry *models.CacheEntry) error {
	if err := s.store.db.Upsert(entry.Key, entry); err != nil {
		return fmt.Errorf("failed to store cache entry '%s': %w", entry.Key, err)
	}
	return nil
}

func (s *cacheStore) Delete(_ context.Context, key string) error {
	err := s.store.db.Delete(key, models.CacheEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete cache entry '%s': %w", key, err)
	}
	return nil
}

// Purge deletes every cached payload. Settings are untouched.
func (s *cacheStore) Purge(_ context.Context) (int, error) {
	var entries []models.CacheEntry
	if err := s.store.db.Find(&entries, nil); err != nil {
		return 0, fmt.Errorf("failed to scan cache entries: %w", err)
	}

	deleted := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Key, "payload:") {
			continue
		}
		if err := s.store.db.Delete(entry.Key, models.CacheEntry{}); err != nil {
			return deleted, fmt.Errorf("failed to delete cache entry '%s': %w", entry.Key, err)
		}
		deleted++
	}

	s.logger.Debug().Int("deleted", deleted).Msg("Payload cache purged")
	return deleted, nil
}
