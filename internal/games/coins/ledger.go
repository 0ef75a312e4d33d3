package coins

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/stepcoins/internal/kv"
)

// ErrNotEnoughSteps is returned by Spend when the balance cannot cover the cost.
var ErrNotEnoughSteps = errors.New("coins: not enough steps")

// Ledger tracks the step currency: the latest raw pedometer total and the
// persisted amount already spent. The balance is raw − consumed and is not
// floored at zero.
//
// Spend is serialized by a mutex so two concurrent spends can never both
// succeed against a balance that covers only one.
type Ledger struct {
	mu    sync.Mutex
	store kv.Store
	raw   int
}

// NewLedger creates a ledger over the given store. The raw total starts at
// the last persisted count of today's steps.
func NewLedger(store kv.Store) *Ledger {
	return &Ledger{
		store: store,
		raw:   store.Get(kv.KeyStepsToday),
	}
}

// SetRawTotal records the latest pedometer reading. Last write wins.
func (l *Ledger) SetRawTotal(raw int) {
	l.mu.Lock()
	l.raw = raw
	l.mu.Unlock()
}

// RawTotal returns the cached pedometer reading.
func (l *Ledger) RawTotal() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.raw
}

// Consumed returns the persisted amount of steps spent.
func (l *Ledger) Consumed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Get(kv.KeyConsumedSteps)
}

// AvailableSteps returns raw − consumed.
func (l *Ledger) AvailableSteps() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.raw - l.store.Get(kv.KeyConsumedSteps)
}

// Spend debits amount steps. The consumed total is persisted before Spend
// returns. When the balance is short it returns ErrNotEnoughSteps and
// changes nothing.
func (l *Ledger) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("coins: negative spend %d", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	consumed := l.store.Get(kv.KeyConsumedSteps)
	if l.raw-consumed < amount {
		return ErrNotEnoughSteps
	}
	l.store.Set(kv.KeyConsumedSteps, consumed+amount)
	return nil
}

// Reset zeroes the persisted consumed total.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.store.Set(kv.KeyConsumedSteps, 0)
	l.mu.Unlock()
}

// Score is the persisted coin count. Every change is written through.
type Score struct {
	store kv.Store
	value int
}

// LoadScore reads the persisted score.
func LoadScore(store kv.Store) *Score {
	return &Score{store: store, value: store.Get(kv.KeyScore)}
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}

// Add increments the score and persists it.
func (s *Score) Add(n int) {
	s.value += n
	s.store.Set(kv.KeyScore, s.value)
}

// ResetPersisted zeroes the stored score. The in-memory value is kept so
// the final result can still be shown.
func (s *Score) ResetPersisted() {
	s.store.Set(kv.KeyScore, 0)
}
