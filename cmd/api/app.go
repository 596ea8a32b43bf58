package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"medi-forecast/internal/config"
	"medi-forecast/internal/location"
	"medi-forecast/internal/providers/httpx"
	"medi-forecast/internal/providers/openstreetmap"
	"medi-forecast/internal/scheduler"
	"medi-forecast/internal/store"
	"medi-forecast/internal/weather"

	_ "medi-forecast/docs" // Ensure docs are imported
)

// resultHistory is how many fetch results the store keeps per provider and location
const resultHistory = 5

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	locationService location.Service
	weatherService  weather.Service
	store           *store.Memory
	scheduler       *scheduler.Scheduler
	cfg             *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	nominatimTransport := httpx.NewClient(httpx.Config{
		Name:              "nominatim",
		Timeout:           cfg.App.FetchTimeout,
		RequestsPerSecond: 1,
		Burst:             1,
		UserAgent:         cfg.Providers.Nominatim.UserAgent,
		Breaker:           cfg.Breaker,
	}, logger)
	nominatim := openstreetmap.NewClient(nominatimTransport, cfg.Providers.Nominatim.BaseURL, logger)
	locationSvc := location.NewLocationService(cfg, nominatim, logger)

	// Initialize weather service
	weatherSvc, err := weather.NewWeatherService(cfg, locationSvc, logger)
	if err != nil {
		return nil, err
	}

	results := store.NewMemory(resultHistory)
	sched, err := scheduler.New(cfg, weatherSvc, results, locationSvc.Configured(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	app := newApp(cfg, logger, locationSvc, weatherSvc, results)
	app.scheduler = sched
	return app, nil
}

// newApp wires the router around already constructed services
func newApp(cfg *config.Config, logger *slog.Logger, locationSvc location.Service, weatherSvc weather.Service, results *store.Memory) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	app := &App{
		router:          router,
		logger:          logger.With("component", "api"),
		locationService: locationSvc,
		weatherService:  weatherSvc,
		store:           results,
		cfg:             cfg,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the background refresh and the HTTP server
func (app *App) Run(addr string) error {
	if app.scheduler != nil {
		if err := app.scheduler.Start(); err != nil {
			return err
		}
		defer app.scheduler.Stop()

		if app.cfg.App.RefreshSchedule != "" {
			go app.scheduler.RunOnce(context.Background())
		}
	}

	return app.router.Run(addr)
}
