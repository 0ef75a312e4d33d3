package sensor

import "sync"

// Sink accepts events from a source. Implementations must be safe for use
// from the source's goroutine.
type Sink interface {
	Push(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Push implements Sink.
func (f SinkFunc) Push(ev Event) {
	f(ev)
}

// Tee fans every event out to several sinks in order.
type Tee []Sink

// Push implements Sink.
func (t Tee) Push(ev Event) {
	for _, s := range t {
		s.Push(ev)
	}
}

// Inbox is a multi-producer, single-consumer event queue.
// Producers Push from any goroutine; the game loop calls Drain once per
// frame and applies the events on its own goroutine.
type Inbox struct {
	mu    sync.Mutex
	back  []Event
	front []Event
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{
		back:  make([]Event, 0, 16),
		front: make([]Event, 0, 16),
	}
}

// Push implements Sink.
func (in *Inbox) Push(ev Event) {
	in.mu.Lock()
	in.back = append(in.back, ev)
	in.mu.Unlock()
}

// Drain returns all pending events in arrival order. The returned slice is
// only valid until the next Drain.
func (in *Inbox) Drain() []Event {
	in.mu.Lock()
	in.front, in.back = in.back, in.front[:0]
	in.mu.Unlock()
	return in.front
}

// Len returns the number of pending events.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.back)
}

// Broadcast fans events out to a changing set of sinks. A sink added late
// first receives the latest step count and activity, so it does not wait
// for the source's next reading.
type Broadcast struct {
	mu           sync.Mutex
	nextID       int
	subs         []subscription
	lastSteps    Event
	lastActivity Event
}

type subscription struct {
	id   int
	sink Sink
}

// Add subscribes s and returns the function that unsubscribes it.
func (b *Broadcast) Add(s Sink) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, sink: s})
	if b.lastSteps != nil {
		s.Push(b.lastSteps)
	}
	if b.lastActivity != nil {
		s.Push(b.lastActivity)
	}
	return func() { b.remove(id) }
}

func (b *Broadcast) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed sinks.
func (b *Broadcast) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Push implements Sink.
func (b *Broadcast) Push(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch ev.(type) {
	case StepUpdate:
		b.lastSteps = ev
	case ActivityUpdate:
		b.lastActivity = ev
	}
	for _, sub := range b.subs {
		sub.sink.Push(ev)
	}
}
