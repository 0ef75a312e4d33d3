package coins

// TaskKind groups scheduled tasks.
type TaskKind int

const (
	TaskSpawn       TaskKind = iota // Periodic coin spawn
	TaskCoinTimeout                 // Per-coin miss deadline
	TaskAlertExpire                 // Dismisses the "not enough steps" banner
)

// TaskKey identifies a scheduled task. Coin timeouts are keyed by the
// coin's body id so they can be cancelled when the coin is collected.
type TaskKey struct {
	Kind TaskKind
	ID   BodyID
}

type task struct {
	key    TaskKey
	due    float64
	period float64 // 0 for one-shot tasks
	seq    uint64  // tie-breaker: earlier registration runs first
	fn     func()
}

// Scheduler is a registry of deferred and repeating actions on the
// simulation clock. It never runs anything on its own: Advance executes
// every task that has come due, in deadline order.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks map[TaskKey]*task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[TaskKey]*task)}
}

// Now returns the current simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once, delay seconds from now.
// An existing task with the same key is replaced.
func (s *Scheduler) After(key TaskKey, delay float64, fn func()) {
	s.put(key, s.now+delay, 0, fn)
}

// Every schedules fn to run now and then every period seconds.
// An existing task with the same key is replaced.
func (s *Scheduler) Every(key TaskKey, period float64, fn func()) {
	s.put(key, s.now, period, fn)
}

func (s *Scheduler) put(key TaskKey, due, period float64, fn func()) {
	s.seq++
	s.tasks[key] = &task{key: key, due: due, period: period, seq: s.seq, fn: fn}
}

// Cancel removes a task. It reports whether the task was pending.
func (s *Scheduler) Cancel(key TaskKey) bool {
	if _, ok := s.tasks[key]; !ok {
		return false
	}
	delete(s.tasks, key)
	return true
}

// CancelAll removes every pending task.
func (s *Scheduler) CancelAll() {
	clear(s.tasks)
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Has reports whether a task with the key is scheduled.
func (s *Scheduler) Has(key TaskKey) bool {
	_, ok := s.tasks[key]
	return ok
}

// Advance moves the clock to t, running every task due at or before t.
// Tasks may schedule or cancel other tasks, including all of them.
func (s *Scheduler) Advance(t float64) {
	for {
		next := s.nextDue(t)
		if next == nil {
			break
		}
		s.now = next.due
		if next.period > 0 {
			s.seq++
			next.due += next.period
			next.seq = s.seq
		} else {
			delete(s.tasks, next.key)
		}
		next.fn()
	}
	if t > s.now {
		s.now = t
	}
}

// nextDue returns the earliest task due at or before t.
func (s *Scheduler) nextDue(t float64) *task {
	var best *task
	for _, tk := range s.tasks {
		if tk.due > t {
			continue
		}
		if best == nil || tk.due < best.due || (tk.due == best.due && tk.seq < best.seq) {
			best = tk
		}
	}
	return best
}
