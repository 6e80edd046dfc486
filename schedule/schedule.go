// Package schedule runs periodic work on a single goroutine.
package schedule

import (
	"context"
	"time"
)

// Every calls fn once per interval until ctx is done. fn runs on the
// calling goroutine; ticks that fall due while fn is still running are
// dropped rather than queued, so calls never overlap or pile up.
func Every(ctx context.Context, interval time.Duration, fn func(time.Time)) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn(now)
		}
	}
}

// Loop is a single control thread that serializes input handling and
// periodic ticks.
type Loop struct {
	Interval time.Duration
	OnTick   func(time.Time)
	// OnInput handles one line; returning true stops the loop.
	OnInput func(string) bool
}

// Run dispatches until ctx is cancelled, input is closed or OnInput asks to
// stop. Cancellation reports ctx.Err(); the other two return nil.
func (l *Loop) Run(ctx context.Context, input <-chan string) error {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if l.OnTick != nil {
				l.OnTick(now)
			}
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if l.OnInput != nil && l.OnInput(line) {
				return nil
			}
		}
	}
}
