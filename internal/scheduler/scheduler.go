package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/pool"

	"medi-forecast/internal/config"
	"medi-forecast/internal/types"
	"medi-forecast/internal/weather"
)

// Fetcher runs a single fetch cycle.
type Fetcher interface {
	Fetch(ctx context.Context, req weather.Request) (*weather.Result, error)
}

// Saver stores the result of a successful cycle.
type Saver interface {
	Save(loc types.Location, result *weather.Result)
}

// Scheduler periodically refreshes the configured locations.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	provider  weather.ProviderKind
	days      int
	timeout   time.Duration
	locations []types.Location
	fetcher   Fetcher
	saver     Saver
	logger    *slog.Logger
}

// New creates a scheduler for cfg.App.RefreshSchedule. It does not start it.
func New(cfg *config.Config, fetcher Fetcher, saver Saver, locations []types.Location, logger *slog.Logger) (*Scheduler, error) {
	provider, err := weather.ParseProvider(cfg.App.RefreshProvider)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh provider: %w", err)
	}

	logger = logger.With("component", "scheduler")
	cronLogger := cronLogAdapter{logger: logger}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		schedule:  cfg.App.RefreshSchedule,
		provider:  provider,
		days:      cfg.App.DefaultDays,
		timeout:   cfg.App.FetchTimeout,
		locations: locations,
		fetcher:   fetcher,
		saver:     saver,
		logger:    logger,
	}, nil
}

// Start registers the refresh job and starts the cron runner. An empty
// schedule or an empty location list leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("background refresh disabled")
		return nil
	}
	if len(s.locations) == 0 {
		s.logger.Info("no locations configured; nothing to schedule")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("background refresh scheduled",
		"schedule", s.schedule,
		"provider", string(s.provider),
		"locations", len(s.locations),
	)
	return nil
}

// Stop stops future runs. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce fetches every location concurrently. A failed location keeps its
// previously stored result.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()
	s.logger.Debug("running refresh job")

	p := pool.New()
	for _, loc := range s.locations {
		p.Go(func() {
			s.refresh(ctx, loc)
		})
	}
	p.Wait()

	s.logger.Debug("refresh job complete", "duration", time.Since(start))
}

func (s *Scheduler) refresh(ctx context.Context, loc types.Location) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.fetcher.Fetch(ctx, weather.Request{
		Provider: s.provider,
		Location: loc,
		Days:     s.days,
	})
	if err != nil {
		s.logger.Error("refresh failed", "location", loc.Key(), "error", err)
		return
	}

	s.saver.Save(loc, result)
}

// cronLogAdapter routes cron's own diagnostics through slog.
type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, append(keysAndValues, "error", err)...)
}
