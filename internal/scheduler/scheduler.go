package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"PriceChart/internal/chart"
	"PriceChart/internal/collector"
	"PriceChart/internal/model"
	"PriceChart/internal/render"
)

// Job describes one chart refresh: where the data comes from and where the image goes.
type Job struct {
	Source     collector.Source
	Sort       bool
	Dimensions model.Dimensions
	Chart      chart.Options
	Render     render.Options
	Output     string
}

// Run loads the source, rebuilds the chart context and atomically replaces the output.
func (j Job) Run(ctx context.Context) error {
	ds, err := collector.Collect(ctx, j.Source, j.Sort)
	if err != nil {
		return err
	}
	c, err := chart.NewContext(ds, j.Dimensions, j.Chart)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}
	if err := render.WriteFile(j.Output, c, chart.Tooltip{}, j.Render); err != nil {
		return fmt.Errorf("write %s: %w", j.Output, err)
	}
	return nil
}

// Scheduler re-renders the chart on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	Job  Job
	Ctx  context.Context

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	logger := cronLogger{l: log.With().Str("component", "cron").Logger()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		Job: job,
		Ctx: ctx,
	}
}

// Register adds the render task for a six-field cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.renderTask); err != nil {
		return fmt.Errorf("register render task: %w", err)
	}
	log.Info().Str("cron", spec).Str("output", s.Job.Output).Msg("render task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running render to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the render task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() error {
	return s.run()
}

// LastRun reports when the last run finished and how it ended.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

func (s *Scheduler) renderTask() {
	// errors are logged in run; the previous output stays in place
	_ = s.run()
}

func (s *Scheduler) run() error {
	start := time.Now()
	err := s.Job.Run(s.Ctx)

	s.mu.Lock()
	s.lastRun, s.lastErr = time.Now(), err
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("output", s.Job.Output).Msg("render failed, keeping previous output")
		return err
	}
	log.Info().Str("output", s.Job.Output).Dur("elapsed", time.Since(start)).Msg("chart rendered")
	return nil
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
