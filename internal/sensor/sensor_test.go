package sensor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestInboxDrainOrder(t *testing.T) {
	in := NewInbox()
	in.Push(StepUpdate{RawSteps: 1})
	in.Push(ActivityUpdate{Kind: ActivityWalking})
	in.Push(StepUpdate{RawSteps: 2})

	if in.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", in.Len())
	}

	events := in.Drain()
	if len(events) != 3 {
		t.Fatalf("Drain() returned %d events, expected 3", len(events))
	}
	if su, ok := events[2].(StepUpdate); !ok || su.RawSteps != 2 {
		t.Errorf("last event = %#v, expected StepUpdate{2}", events[2])
	}
	if len(in.Drain()) != 0 {
		t.Error("second Drain should be empty")
	}
}

func TestInboxConcurrentProducers(t *testing.T) {
	in := NewInbox()
	const producers, perProducer = 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				in.Push(StepUpdate{RawSteps: i})
			}
		}()
	}

	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			total += len(in.Drain())
			if total != producers*perProducer {
				t.Errorf("drained %d events, expected %d", total, producers*perProducer)
			}
			return
		default:
			total += len(in.Drain())
		}
	}
}

func TestTee(t *testing.T) {
	a, b := NewInbox(), NewInbox()
	Tee{a, b}.Push(StepUpdate{RawSteps: 5})
	if a.Len() != 1 || b.Len() != 1 {
		t.Error("Tee should deliver to every sink")
	}
}

func TestBroadcast(t *testing.T) {
	var b Broadcast
	first := NewInbox()
	removeFirst := b.Add(first)

	b.Push(ActivityUpdate{Kind: ActivityWalking})
	b.Push(StepUpdate{RawSteps: 10})
	b.Push(StepUpdate{RawSteps: 20})
	if first.Len() != 3 {
		t.Fatalf("first sink got %d events, expected 3", first.Len())
	}

	// A late sink starts from the latest readings
	late := NewInbox()
	removeLate := b.Add(late)
	events := late.Drain()
	if len(events) != 2 {
		t.Fatalf("late sink got %d events, expected 2", len(events))
	}
	if su, ok := events[0].(StepUpdate); !ok || su.RawSteps != 20 {
		t.Errorf("late sink first event = %#v, expected 20 steps", events[0])
	}
	if au, ok := events[1].(ActivityUpdate); !ok || au.Kind != ActivityWalking {
		t.Errorf("late sink second event = %#v, expected walking", events[1])
	}

	removeFirst()
	removeFirst()
	if b.Len() != 1 {
		t.Fatalf("Len = %d after removing one sink, expected 1", b.Len())
	}
	first.Drain()
	b.Push(StepUpdate{RawSteps: 30})
	if first.Len() != 0 || late.Len() != 1 {
		t.Error("removed sink should stop receiving events")
	}

	// Function sinks are not comparable but can still be removed
	var calls int
	removeFunc := b.Add(SinkFunc(func(Event) { calls++ }))
	removeFunc()
	removeLate()
	b.Push(StepUpdate{RawSteps: 40})
	if b.Len() != 0 || calls != 2 {
		t.Errorf("Len=%d calls=%d, expected 0 and 2 (replayed readings only)", b.Len(), calls)
	}
}

func TestWalkerPublishesSteps(t *testing.T) {
	in := NewInbox()
	w := NewWalker(100, 1000, nil)
	w.Interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx, in); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	var first, latest int = -1, -1
	deadline := time.After(2 * time.Second)
	for latest <= 100 {
		select {
		case <-deadline:
			t.Fatalf("no step growth observed, latest=%d", latest)
		default:
		}
		for _, ev := range in.Drain() {
			if su, ok := ev.(StepUpdate); ok {
				if first < 0 {
					first = su.RawSteps
				}
				latest = su.RawSteps
			}
		}
		time.Sleep(time.Millisecond)
	}
	if first != 100 {
		t.Errorf("first update = %d, expected base 100", first)
	}
}

func TestWalkerActivity(t *testing.T) {
	tests := []struct {
		rate     float64
		expected ActivityKind
	}{
		{0, ActivityStationary},
		{1.5, ActivityWalking},
		{3, ActivityRunning},
	}
	for _, tc := range tests {
		w := NewWalker(0, tc.rate, nil)
		if got := w.Activity(); got != tc.expected {
			t.Errorf("rate %.1f: Activity() = %v, expected %v", tc.rate, got, tc.expected)
		}
	}
}

func TestUnavailable(t *testing.T) {
	err := Unavailable{}.Start(context.Background(), NewInbox())
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Errorf("Start() = %v, expected ErrSensorUnavailable", err)
	}
	if err := StartOrLog(context.Background(), Unavailable{}, NewInbox(), nil); err != nil {
		t.Errorf("StartOrLog should swallow unavailability, got %v", err)
	}
}

func TestActivityLabels(t *testing.T) {
	if ActivityWalking.Label() != "Walking🚶" || ActivityKind(42).Label() != "Unknown🤔" {
		t.Error("unexpected activity labels")
	}
	if ParseActivity("cycling") != ActivityCycling || ParseActivity("flying") != ActivityUnknown {
		t.Error("ParseActivity mismatch")
	}
}
