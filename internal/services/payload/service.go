// Package payload implements the PayloadSource: a TTL cache over the metrics
// webhook, keyed by the fetch parameters derived from UI state.
package payload

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
	"github.com/bobmcallan/pulse/internal/models"
)

// Service serves payloads from the cache when fresh and fetches otherwise.
//
// Concurrent fetches are serialized by generation, tracked per cache key:
// each fetch takes a generation number when it starts, and its result commits
// only if no later-started fetch for the same key has committed first. A slow
// stale fetch can therefore never overwrite a newer payload, while fetches
// for different windows never invalidate each other.
type Service struct {
	webhook interfaces.WebhookClient
	cache   interfaces.CacheStore
	config  *common.Config
	logger  *common.Logger

	dashboardQuery     string
	documentationQuery string
	queryHash          uint64

	mu          sync.Mutex
	nextGen     uint64
	committed   map[string]uint64
	lastFetched time.Time
}

// NewService creates a payload source. The query texts referenced by the
// dashboard config are read once at startup; a missing query file is not an
// error, the webhook falls back to its stored defaults.
func NewService(webhook interfaces.WebhookClient, cache interfaces.CacheStore, config *common.Config, logger *common.Logger) *Service {
	s := &Service{
		webhook:   webhook,
		cache:     cache,
		config:    config,
		logger:    logger,
		committed: make(map[string]uint64),
	}
	s.dashboardQuery = loadQueryFile(config.Dashboard.DashboardQuery, logger)
	s.documentationQuery = loadQueryFile(config.Dashboard.DocumentationQuery, logger)
	s.queryHash = models.QueryHash(s.dashboardQuery, s.documentationQuery)
	return s
}

func loadQueryFile(path string, logger *common.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Query file not readable, sending empty query")
		return ""
	}
	return string(data)
}

// Get returns the cached payload when the entry is younger than the TTL,
// otherwise fetches and stores.
func (s *Service) Get(ctx context.Context, state models.UIState) (*models.RawPayload, error) {
	key := s.cacheKey(state)

	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, fetching")
	} else if entry != nil && !entry.Expired(s.config.Dashboard.GetCacheTTL()) {
		s.logger.Debug().
			Str("key", key).
			Dur("age", entry.Age()).
			Msg("Payload cache hit")
		return &entry.Data, nil
	}

	return s.fetch(ctx, state, key)
}

// Refresh bypasses the cache and fetches, storing the result.
func (s *Service) Refresh(ctx context.Context, state models.UIState) (*models.RawPayload, error) {
	return s.fetch(ctx, state, s.cacheKey(state))
}

// Invalidate drops the cache entry for the state's fetch parameters.
func (s *Service) Invalidate(ctx context.Context, state models.UIState) error {
	return s.cache.Delete(ctx, s.cacheKey(state))
}

// LastFetched returns when the most recently committed fetch completed.
func (s *Service) LastFetched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}

func (s *Service) cacheKey(state models.UIState) string {
	return models.CacheKey(state.DaysBack(time.Now().UTC()), state.DocPeriod, s.queryHash)
}

func (s *Service) fetch(ctx context.Context, state models.UIState, key string) (*models.RawPayload, error) {
	now := time.Now().UTC()
	req := models.FetchRequest{
		DaysBack:           state.DaysBack(now),
		MonthStart:         state.MonthStart(now),
		DashboardQuery:     s.dashboardQuery,
		DocumentationQuery: s.documentationQuery,
	}

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	started := time.Now()
	payload, err := s.webhook.FetchDashboard(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("payload fetch failed: %w", err)
	}

	s.mu.Lock()
	stale := gen <= s.committed[key]
	if !stale {
		s.committed[key] = gen
		s.lastFetched = time.Now()
	}
	s.mu.Unlock()

	if stale {
		s.logger.Info().
			Str("key", key).
			Uint64("generation", gen).
			Dur("duration", time.Since(started)).
			Msg("Discarding stale fetch result")
		entry, cerr := s.cache.Get(ctx, key)
		if cerr == nil && entry != nil {
			return &entry.Data, nil
		}
		// Nothing newer cached under this key; the stale result is still
		// better than an error.
		return payload, nil
	}

	if err := s.cache.Put(ctx, &models.CacheEntry{Key: key, Data: *payload, Timestamp: time.Now()}); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}

	s.logger.Info().
		Str("key", key).
		Int("days_back", req.DaysBack).
		Str("month_start", req.MonthStart).
		Dur("duration", time.Since(started)).
		Msg("Payload fetched")

	return payload, nil
}

var _ interfaces.PayloadSource = (*Service)(nil)
