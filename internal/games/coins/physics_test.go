package coins

import (
	"testing"

	"github.com/vovakirdan/stepcoins/internal/core"
)

func newBag(w *World, x, y float64) *Body {
	return w.Add(&Body{
		Category:    CategoryBag,
		ContactMask: CategoryCoin,
		Shape:       ShapeBox,
		Pos:         core.Vec{X: x, Y: y},
		HalfW:       40,
		HalfH:       25,
	})
}

func newCoinBody(w *World, x, y float64) *Body {
	return w.Add(&Body{
		Category:    CategoryCoin,
		ContactMask: CategoryBag,
		Shape:       ShapeCircle,
		Pos:         core.Vec{X: x, Y: y},
		Radius:      20,
		Gravity:     true,
	})
}

func TestWorldGravity(t *testing.T) {
	w := NewWorld(450)
	coin := newCoinBody(w, 100, 800)
	bag := newBag(w, 100, 50)

	w.Integrate(1)
	if coin.Vel.Y != -450 || coin.Pos.Y != 350 {
		t.Errorf("coin after 1s: vel=%v pos=%v", coin.Vel.Y, coin.Pos.Y)
	}
	if bag.Pos.Y != 50 {
		t.Errorf("bag without gravity moved to %v", bag.Pos.Y)
	}
}

func TestWorldBeginContactOnce(t *testing.T) {
	w := NewWorld(0)
	bag := newBag(w, 100, 50)
	coin := newCoinBody(w, 100, 60)

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, expected 1", len(contacts))
	}
	if contacts[0].A != bag || contacts[0].B != coin {
		t.Error("contact pair should be ordered by body id")
	}

	if len(w.Contacts()) != 0 {
		t.Error("a pair still touching must not be reported again")
	}

	coin.Pos.Y = 500
	if len(w.Contacts()) != 0 {
		t.Error("separated pair reported a contact")
	}
	coin.Pos.Y = 60
	if len(w.Contacts()) != 1 {
		t.Error("pair touching anew should be reported again")
	}
}

func TestWorldContactMask(t *testing.T) {
	w := NewWorld(0)
	newCoinBody(w, 100, 100)
	newCoinBody(w, 105, 100)

	if n := len(w.Contacts()); n != 0 {
		t.Errorf("coins produced %d contacts with each other", n)
	}
}

func TestWorldRemove(t *testing.T) {
	w := NewWorld(0)
	newBag(w, 100, 50)
	coin := newCoinBody(w, 100, 60)

	w.Remove(coin)
	w.Remove(coin)
	if coin.InWorld() {
		t.Error("removed body still reports InWorld")
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", w.Len())
	}
	if len(w.Contacts()) != 0 {
		t.Error("removed body produced a contact")
	}
}

func TestCoinSide(t *testing.T) {
	bag := &Body{ID: 1, Category: CategoryBag}
	coinA := &Body{ID: 2, Category: CategoryCoin}
	coinB := &Body{ID: 3, Category: CategoryCoin}

	tests := []struct {
		name     string
		a, b     *Body
		expected *Body
	}{
		{"coin is A", coinA, bag, coinA},
		{"coin is B", bag, coinB, coinB},
		{"both coins picks A", coinA, coinB, coinA},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoinSide(tc.a, tc.b); got != tc.expected {
				t.Errorf("CoinSide() = body %d, expected body %d", got.ID, tc.expected.ID)
			}
		})
	}
}

func TestCollectorClamp(t *testing.T) {
	c := NewCollector(390, 50, 80, 50, 1000)
	w := NewWorld(450)
	w.Add(c.Body)

	for _, tilt := range []float64{1, 5, -1, -5} {
		for i := 0; i < 120; i++ {
			c.ApplyTilt(tilt)
			w.Integrate(1.0 / 60)
			c.Clamp()
			if c.X() < 0 || c.X() > 390 {
				t.Fatalf("tilt %v: x = %v outside [0, 390]", tilt, c.X())
			}
			if c.Body.Vel.Y != 0 || c.Body.Pos.Y != 50 {
				t.Fatalf("tilt %v: collector moved vertically", tilt)
			}
		}
		want := 390.0
		if tilt < 0 {
			want = 0
		}
		if c.X() != want {
			t.Errorf("tilt %v: x = %v, expected %v", tilt, c.X(), want)
		}
	}
}

func TestCollectorTiltClamped(t *testing.T) {
	c := NewCollector(390, 50, 80, 50, 1000)
	c.ApplyTilt(3)
	if c.Body.Vel.X != 1000 {
		t.Errorf("vx = %v, expected tilt clamped to 1", c.Body.Vel.X)
	}
}
