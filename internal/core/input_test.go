package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionLeft) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Tilt = Acceleration{X: 0.5}
	if !f.Has(ActionLeft) {
		t.Error("Set action should be reported by Has")
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should drop actions")
	}
	if f.Tilt.X != 0.5 {
		t.Error("Clear should keep the tilt sample")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
