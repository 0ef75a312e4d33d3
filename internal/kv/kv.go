// Package kv defines the integer key-value persistence boundary used by the
// game and the step dashboards. Implementations are synchronous and, from the
// caller's point of view, always succeed.
package kv

import "sync"

// Keys persisted across sessions.
const (
	KeyConsumedSteps = "consumedSteps"
	KeyScore         = "score"
	KeyStepsToday    = "StepsToday"
	KeyDailyGoal     = "DailyGoal"
)

// Store is a durable integer key-value store.
// Get returns 0 for keys that were never set.
type Store interface {
	Get(key string) int
	Set(key string, value int)
}

// Memory is an in-process Store guarded by a mutex.
type Memory struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

// Get implements Store.
func (m *Memory) Get(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

// Set implements Store.
func (m *Memory) Set(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Prefixed namespaces every key of an underlying store, so several users
// can share one database.
type Prefixed struct {
	Prefix string
	Store  Store
}

// Get implements Store.
func (p Prefixed) Get(key string) int {
	return p.Store.Get(p.Prefix + key)
}

// Set implements Store.
func (p Prefixed) Set(key string, value int) {
	p.Store.Set(p.Prefix+key, value)
}

var (
	_ Store = (*Memory)(nil)
	_ Store = Prefixed{}
)
