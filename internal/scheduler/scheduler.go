// Package scheduler drives repeated check runs for serve mode. One-shot
// deployments (cron, Kubernetes CronJob) do not use it.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler periodically executes the check job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       func(ctx context.Context) error
}

// New creates a Scheduler running job every interval.
func New(interval time.Duration, job func(ctx context.Context) error) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		job:       job,
	}
}

// Start schedules the job and starts the underlying scheduler. Jobs run in
// singleton mode so a slow check can never overlap the next one. Failures
// are logged and left to the next cycle, matching the
// let-it-crash-and-retry-next-run model of the one-shot mode.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.job(ctx); err != nil {
			log.Printf("scheduler: check run failed: %v", err)
		}
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
