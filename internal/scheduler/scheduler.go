package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"shorecast/internal/conditions"
)

// Scheduler periodically re-runs the aggregation for the last successful
// place so displayed conditions do not go stale.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	aggregator *conditions.Aggregator
	interval   time.Duration
	log        *zap.Logger
}

// New creates a new Scheduler. An interval of zero disables it.
func New(aggregator *conditions.Aggregator, interval time.Duration, log *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		aggregator: aggregator,
		interval:   interval,
		log:        log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.log.Debug("scheduler: running refresh job")
		s.aggregator.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
