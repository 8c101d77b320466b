package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"JournalClub/internal/ports"
)

// Runner is anything that rebuilds the artifacts once.
type Runner interface {
	Run(ctx context.Context) (Report, error)
}

// Scheduler wires an input-change trigger with the pipeline use case.
type Scheduler struct {
	driver ports.Trigger
	runner Runner
	logger *slog.Logger

	mu   sync.Mutex
	runs int
}

// NewScheduler returns a helper to start/stop rebuilds on input changes.
func NewScheduler(driver ports.Trigger, runner Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{driver: driver, runner: runner, logger: logger}
}

// Start registers the pipeline with the provided trigger.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) {
		s.runOnce(ctx, trigger)
	})
}

// Stop tears down the underlying trigger.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

// Runs is the number of completed rebuild attempts.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// runOnce serialises rebuilds; a failed rebuild is logged and the watch continues.
func (s *Scheduler) runOnce(ctx context.Context, trigger time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.runner.Run(ctx)
	s.runs++
	if err != nil {
		s.logger.Error("rebuild failed", "trigger", trigger.Format(time.RFC3339), "error", err)
		return
	}
	s.logger.Info("rebuild finished",
		"trigger", trigger.Format(time.RFC3339),
		"sessions", report.Sessions,
		"skipped", report.SkippedTotal())
}
