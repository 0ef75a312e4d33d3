package goals

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stepcoins/internal/kv"
	"github.com/vovakirdan/stepcoins/internal/sensor"
)

// DayLog stores per-day step totals.
type DayLog interface {
	RecordDailySteps(user string, day time.Time, steps int) error
}

// Recorder is a sensor sink that persists every step reading: the running
// total for today in the key-value store, and the same total in the daily
// log so yesterday's count is available tomorrow.
type Recorder struct {
	Store  kv.Store
	Log    DayLog // Optional
	User   string
	Logger *log.Logger

	mu       sync.Mutex
	activity sensor.ActivityKind
}

// NewRecorder creates a recorder for user.
func NewRecorder(store kv.Store, dayLog DayLog, user string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{Store: store, Log: dayLog, User: user, Logger: logger}
}

// Push implements sensor.Sink.
func (r *Recorder) Push(ev sensor.Event) {
	switch e := ev.(type) {
	case sensor.StepUpdate:
		r.Store.Set(kv.KeyStepsToday, e.RawSteps)
		if r.Log == nil {
			return
		}
		day := e.Timestamp
		if day.IsZero() {
			day = time.Now()
		}
		if err := r.Log.RecordDailySteps(r.User, day, e.RawSteps); err != nil {
			r.Logger.Warn("cannot record daily steps", "user", r.User, "error", err)
		}
	case sensor.ActivityUpdate:
		r.mu.Lock()
		changed := e.Kind != r.activity
		r.activity = e.Kind
		r.mu.Unlock()
		if changed {
			r.Logger.Debug("activity changed", "user", r.User, "activity", e.Kind)
		}
	case sensor.SensorError:
		r.Logger.Warn("pedometer error", "user", r.User, "error", e.Err)
	}
}

// Activity returns the last reported activity.
func (r *Recorder) Activity() sensor.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activity
}

var _ sensor.Sink = (*Recorder)(nil)
