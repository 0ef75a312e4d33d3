package sensor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Source produces sensor events until its context is cancelled.
// Start returns ErrSensorUnavailable when the source cannot run at all;
// otherwise it starts publishing in the background and returns nil.
type Source interface {
	Start(ctx context.Context, sink Sink) error
}

// Walker simulates a pedometer: it starts from Base steps and adds Rate
// steps per second, publishing the running total every Interval.
type Walker struct {
	Base     int
	Rate     float64 // steps per second
	Interval time.Duration
	Logger   *log.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewWalker creates a simulated pedometer.
func NewWalker(base int, rate float64, logger *log.Logger) *Walker {
	return &Walker{
		Base:     base,
		Rate:     rate,
		Interval: 500 * time.Millisecond,
		Logger:   logger,
		now:      time.Now,
	}
}

// Activity returns the activity implied by the walking rate.
func (w *Walker) Activity() ActivityKind {
	switch {
	case w.Rate <= 0:
		return ActivityStationary
	case w.Rate >= 2.5:
		return ActivityRunning
	default:
		return ActivityWalking
	}
}

// Start implements Source.
func (w *Walker) Start(ctx context.Context, sink Sink) error {
	now := w.now
	if now == nil {
		now = time.Now
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	started := now()
	sink.Push(ActivityUpdate{Kind: w.Activity(), Timestamp: started})
	sink.Push(StepUpdate{RawSteps: w.Base, Timestamp: started})

	if w.Logger != nil {
		w.Logger.Debug("pedometer started", "base", w.Base, "rate", w.Rate)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				if w.Logger != nil {
					w.Logger.Debug("pedometer stopped")
				}
				return
			case <-ticker.C:
				t := now()
				steps := w.Base + int(t.Sub(started).Seconds()*w.Rate)
				sink.Push(StepUpdate{RawSteps: steps, Timestamp: t})
			}
		}
	}()
	return nil
}

// Unavailable is a Source for devices without step counting.
type Unavailable struct{}

// Start implements Source.
func (Unavailable) Start(context.Context, Sink) error {
	return ErrSensorUnavailable
}

// StartOrLog starts src and logs ErrSensorUnavailable instead of returning
// it, matching the "feature silently disabled" contract. Other errors are
// returned.
func StartOrLog(ctx context.Context, src Source, sink Sink, logger *log.Logger) error {
	err := src.Start(ctx, sink)
	if err == nil {
		return nil
	}
	if logger != nil {
		logger.Warn("step counting disabled", "error", err)
	}
	if errors.Is(err, ErrSensorUnavailable) {
		return nil
	}
	return err
}
