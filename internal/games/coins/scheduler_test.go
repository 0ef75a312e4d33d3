package coins

import (
	"reflect"
	"testing"
)

func TestSchedulerAfterOrder(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After(TaskKey{Kind: TaskCoinTimeout, ID: 2}, 2, func() { got = append(got, "b") })
	s.After(TaskKey{Kind: TaskCoinTimeout, ID: 1}, 1, func() { got = append(got, "a") })
	s.After(TaskKey{Kind: TaskAlertExpire}, 2, func() { got = append(got, "c") })

	s.Advance(1.5)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after 1.5s ran %v", got)
	}
	s.Advance(3)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ran %v, expected [a b c]", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after one-shots ran", s.Pending())
	}
	if s.Now() != 3 {
		t.Errorf("Now() = %v, expected 3", s.Now())
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	var at []float64
	s.Every(TaskKey{Kind: TaskSpawn}, 1, func() { at = append(at, s.Now()) })

	s.Advance(3.5)
	want := []float64{0, 1, 2, 3}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("runs at %v, expected %v", at, want)
	}
	if !s.Has(TaskKey{Kind: TaskSpawn}) {
		t.Error("periodic task should stay scheduled")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	key := TaskKey{Kind: TaskCoinTimeout, ID: 7}
	s.After(key, 1, func() { ran = true })

	if !s.Cancel(key) {
		t.Error("Cancel should report a pending task")
	}
	if s.Cancel(key) {
		t.Error("second Cancel should report nothing pending")
	}
	s.Advance(2)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestSchedulerCancelAllFromTask(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.After(TaskKey{Kind: TaskCoinTimeout, ID: 1}, 1, func() {
		ran++
		s.CancelAll()
	})
	s.After(TaskKey{Kind: TaskCoinTimeout, ID: 2}, 1, func() { ran++ })
	s.Every(TaskKey{Kind: TaskSpawn}, 0.5, func() {})

	s.Advance(10)
	if ran != 1 {
		t.Errorf("%d timeout tasks ran, expected 1", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after CancelAll", s.Pending())
	}
}

func TestSchedulerReplaceKey(t *testing.T) {
	s := NewScheduler()
	var got []int
	key := TaskKey{Kind: TaskAlertExpire}
	s.After(key, 1, func() { got = append(got, 1) })
	s.After(key, 2, func() { got = append(got, 2) })

	s.Advance(5)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("ran %v, expected only the replacement", got)
	}
}
