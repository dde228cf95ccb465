package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"project_billing/internal/infrastructure/logger"
)

type fakeExpirer struct {
	calls chan struct{}
	n     int
	err   error
}

func (f *fakeExpirer) ExpireOverdue(ctx context.Context) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected a deadline")
	}
	if f.calls != nil {
		f.calls <- struct{}{}
	}
	return f.n, f.err
}

func TestRunQuoteExpiry(t *testing.T) {
	s := New(logger.NewNop())

	if got := s.RunQuoteExpiry(context.Background(), &fakeExpirer{n: 3}); got != 3 {
		t.Fatalf("expected 3 expired, got %d", got)
	}
	if got := s.RunQuoteExpiry(context.Background(), &fakeExpirer{n: 1, err: errors.New("store down")}); got != 1 {
		t.Fatalf("expected partial count 1, got %d", got)
	}
}

func TestScheduleQuoteExpiry(t *testing.T) {
	t.Run("empty schedule disables", func(t *testing.T) {
		s := New(nil)
		if err := s.ScheduleQuoteExpiry("", &fakeExpirer{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.cron.Entries()) != 0 {
			t.Fatalf("expected no entries, got %d", len(s.cron.Entries()))
		}
	})

	t.Run("invalid schedule", func(t *testing.T) {
		s := New(nil)
		if err := s.ScheduleQuoteExpiry("every tuesday", &fakeExpirer{}); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("job runs", func(t *testing.T) {
		s := New(nil)
		exp := &fakeExpirer{calls: make(chan struct{}, 4)}
		if err := s.ScheduleQuoteExpiry("@every 1s", exp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			s.Stop(ctx)
		}()

		select {
		case <-exp.calls:
		case <-time.After(3 * time.Second):
			t.Fatalf("job did not run")
		}
	})
}
