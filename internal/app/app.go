// Package app wires configuration, storage, clients, and services into the
// shared core used by cmd/pulse-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bobmcallan/pulse/internal/clients/weather"
	"github.com/bobmcallan/pulse/internal/clients/webhook"
	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
	"github.com/bobmcallan/pulse/internal/services/payload"
	"github.com/bobmcallan/pulse/internal/services/projector"
	"github.com/bobmcallan/pulse/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	WebhookClient    interfaces.WebhookClient
	WeatherClient    interfaces.WeatherClient
	PayloadSource    interfaces.PayloadSource
	DashboardService interfaces.DashboardService
	StartupTime      time.Time

	mu              sync.Mutex
	schedulerCancel context.CancelFunc
	warmCacheCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services. configPath may be empty,
// in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, PULSE_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("PULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "pulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/pulse.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Webhook.URL == "" {
		logger.Warn().Msg("Webhook URL not configured - dashboard data will be unavailable")
	}

	webhookClient := webhook.NewClient(config.Clients.Webhook.URL,
		webhook.WithLogger(logger),
		webhook.WithRateLimit(config.Clients.Webhook.RateLimit),
		webhook.WithTimeout(config.Clients.Webhook.GetTimeout()),
	)

	weatherOpts := []weather.ClientOption{
		weather.WithLogger(logger),
		weather.WithTimeout(config.Clients.Weather.GetTimeout()),
	}
	if config.Clients.Weather.BaseURL != "" {
		weatherOpts = append(weatherOpts, weather.WithBaseURL(config.Clients.Weather.BaseURL))
	}
	weatherClient := weather.NewClient(weatherOpts...)

	payloadSource := payload.NewService(webhookClient, storageManager.CacheStore(), config, logger)
	dashboardService := projector.NewService(payloadSource, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		WebhookClient:    webhookClient,
		WeatherClient:    weatherClient,
		PayloadSource:    payloadSource,
		DashboardService: dashboardService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("version", common.GetFullVersion()).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: cancel scheduler, cancel warm cache, close storage.
func (a *App) Close() {
	a.mu.Lock()
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.warmCacheCancel != nil {
		a.warmCacheCancel()
		a.warmCacheCancel = nil
	}
	a.mu.Unlock()

	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// StartWarmCache launches the background cache warming goroutine.
func (a *App) StartWarmCache() {
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	a.mu.Lock()
	a.warmCacheCancel = warmCancel
	a.mu.Unlock()
	go func() {
		defer warmCancel()
		warmCache(warmCtx, a.PayloadSource, a.Storage.SettingsStore(), a.Logger)
	}()
}

// StartRefreshScheduler launches the background payload refresh goroutine
// using the interval from the persisted UI state. Safe to call again after a
// settings change; the previous scheduler is stopped first.
func (a *App) StartRefreshScheduler() {
	a.mu.Lock()
	if a.schedulerCancel != nil {
		a.schedulerCancel()
	}
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	a.schedulerCancel = schedulerCancel
	a.mu.Unlock()

	go startRefreshScheduler(schedulerCtx, a.PayloadSource, a.Storage.SettingsStore(), a.Logger)
}
