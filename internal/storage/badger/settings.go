package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/models"
)

// Settings keys. These mirror the kiosk's original storage layout so exported
// state stays readable as plain key-value pairs.
const (
	keyCurrentView         = "currentView"
	keySelectedPeriod      = "selectedPeriod"
	keyDocPeriod           = "docPeriod"
	keySelectedSegment     = "selectedSegment"
	keyDaysBack            = "daysBack"
	keyRotationInterval    = "rotationInterval"
	keyShowWeather         = "showWeather"
	keyShowClock           = "showClock"
	keyDataRefreshInterval = "dataRefreshInterval"
	trendFilterPrefix      = "trendFilters_"
)

// KVEntry represents a key-value pair stored in BadgerDB.
type KVEntry struct {
	Key   string `badgerhold:"key"`
	Value string
}

type settingsStore struct {
	store  *Store
	logger *common.Logger
}

// NewSettingsStore creates a SettingsStore backed by BadgerHold.
func NewSettingsStore(store *Store, logger *common.Logger) *settingsStore {
	return &settingsStore{store: store, logger: logger}
}

func (s *settingsStore) Get(_ context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return "", fmt.Errorf("key '%s' not found", key)
		}
		return "", fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	return entry.Value, nil
}

func (s *settingsStore) Set(_ context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	if err := s.store.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

func (s *settingsStore) Delete(_ context.Context, key string) error {
	err := s.store.db.Delete(key, KVEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

// LoadUIState assembles the UI state from individual keys, applying defaults
// for anything missing or malformed. A fresh store yields DefaultUIState.
func (s *settingsStore) LoadUIState(ctx context.Context) (models.UIState, error) {
	state := models.DefaultUIState()

	if v, err := s.Get(ctx, keyCurrentView); err == nil {
		state.CurrentView = v
	}
	if v, err := s.Get(ctx, keySelectedPeriod); err == nil {
		state.SelectedPeriod = v
	}
	if v, err := s.Get(ctx, keyDocPeriod); err == nil {
		state.DocPeriod = v
	}
	if v, err := s.Get(ctx, keySelectedSegment); err == nil {
		state.SelectedSegment = v
	}
	if v, err := s.Get(ctx, keyRotationInterval); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			state.RotationInterval = n
		}
	}
	if v, err := s.Get(ctx, keyDataRefreshInterval); err == nil {
		if n, err := strconv.Atoi(v); err == nil {
			state.DataRefreshInterval = n
		}
	}
	if v, err := s.Get(ctx, keyShowWeather); err == nil {
		state.ShowWeather = v == "true"
	}
	if v, err := s.Get(ctx, keyShowClock); err == nil {
		state.ShowClock = v == "true"
	}

	filters, err := s.loadTrendFilters()
	if err != nil {
		return state, err
	}
	state.TrendFilters = filters

	return state.Normalize(), nil
}

// SaveUIState writes every field back to its key. daysBack is derived but
// persisted alongside for external readers of the store.
func (s *settingsStore) SaveUIState(ctx context.Context, state models.UIState) error {
	state = state.Normalize()

	pairs := map[string]string{
		keyCurrentView:         state.CurrentView,
		keySelectedPeriod:      state.SelectedPeriod,
		keyDocPeriod:           state.DocPeriod,
		keySelectedSegment:     state.SelectedSegment,
		keyDaysBack:            strconv.Itoa(state.DaysBack(time.Now())),
		keyRotationInterval:    strconv.Itoa(state.RotationInterval),
		keyShowWeather:         strconv.FormatBool(state.ShowWeather),
		keyShowClock:           strconv.FormatBool(state.ShowClock),
		keyDataRefreshInterval: strconv.Itoa(state.DataRefreshInterval),
	}

	for key, value := range pairs {
		if err := s.Set(ctx, key, value); err != nil {
			return err
		}
	}

	for chartID, filters := range state.TrendFilters {
		data, err := json.Marshal(filters)
		if err != nil {
			return fmt.Errorf("failed to encode trend filters for '%s': %w", chartID, err)
		}
		if err := s.Set(ctx, trendFilterPrefix+chartID, string(data)); err != nil {
			return err
		}
	}

	return nil
}

func (s *settingsStore) loadTrendFilters() (map[string]map[string]bool, error) {
	var entries []KVEntry
	if err := s.store.db.Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	var filters map[string]map[string]bool
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Key, trendFilterPrefix) {
			continue
		}
		chartID := strings.TrimPrefix(entry.Key, trendFilterPrefix)
		var m map[string]bool
		if err := json.Unmarshal([]byte(entry.Value), &m); err != nil {
			s.logger.Warn().Str("chart", chartID).Msg("Discarding malformed trend filter entry")
			continue
		}
		if filters == nil {
			filters = make(map[string]map[string]bool)
		}
		filters[chartID] = m
	}
	return filters, nil
}
