package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher sends each event to every registered sink on its own
// goroutine. One sink failing (or hanging until its timeout) does not
// block or fail another's send, nor the caller: Dispatch returns
// immediately.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
	}
}

// Dispatch is fire-and-forget. The event's delivery deadline is
// detached from the caller's context so a finished HTTP request does
// not cancel in-flight sends.
func (d *Dispatcher) Dispatch(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	for _, sink := range d.sinks {
		d.wg.Add(1)
		go func(s Sink) {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					slog.Error("event sink panicked", "sink", s.Name(), "event", event.Type, "panic", r)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()

			if err := s.Publish(ctx, event); err != nil {
				slog.Warn("event sink delivery failed", "sink", s.Name(), "event", event.Type, "error", err)
			}
		}(sink)
	}
}

// Wait blocks until all in-flight sends have finished. Used by
// shutdown and tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
