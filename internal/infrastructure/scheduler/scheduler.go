// Package scheduler runs the periodic maintenance jobs of the billing service.
package scheduler

import (
	"context"
	"time"

	"project_billing/internal/infrastructure/logger"

	"github.com/robfig/cron/v3"
)

// QuoteExpirer persists EXPIRED on every SENT quote past its expiry date.
type QuoteExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log.With("component", "scheduler"),
		timeout: 5 * time.Minute,
	}
}

// ScheduleQuoteExpiry registers the quote expiry job on schedule (standard cron or
// "@every 1h"). An empty schedule registers nothing.
func (s *Scheduler) ScheduleQuoteExpiry(schedule string, expirer QuoteExpirer) error {
	if schedule == "" {
		s.log.Info("quote expiry job disabled")
		return nil
	}
	_, err := s.cron.AddFunc(schedule, func() { s.RunQuoteExpiry(context.Background(), expirer) })
	if err != nil {
		return err
	}
	s.log.Info("quote expiry job scheduled", "schedule", schedule)
	return nil
}

// RunQuoteExpiry runs one reconciliation pass and returns how many quotes expired.
func (s *Scheduler) RunQuoteExpiry(ctx context.Context, expirer QuoteExpirer) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	n, err := expirer.ExpireOverdue(ctx)
	if err != nil {
		s.log.Error("quote expiry failed", "expired", n, "error", err)
		return n
	}
	s.log.Info("quote expiry done", "expired", n, "elapsed_ms", time.Since(started).Milliseconds())
	return n
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
