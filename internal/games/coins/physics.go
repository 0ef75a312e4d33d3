package coins

import (
	"sort"

	"github.com/vovakirdan/stepcoins/internal/core"
)

// Category is a physics category bitmask.
type Category uint32

const (
	CategoryNone Category = 0
	CategoryBag  Category = 1 << 0
	CategoryCoin Category = 1 << 1
)

// BodyID identifies a body within one world.
type BodyID uint64

// Shape selects the collision shape of a body.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeBox
)

// Body is a simulated entity.
type Body struct {
	ID          BodyID
	Category    Category
	ContactMask Category // Categories that produce contact events with this body
	Shape       Shape
	Pos         core.Vec
	Vel         core.Vec
	Radius      float64 // ShapeCircle
	HalfW       float64 // ShapeBox
	HalfH       float64 // ShapeBox
	Gravity     bool    // Whether world gravity applies

	world *World
}

// InWorld reports whether the body is still part of a world.
func (b *Body) InWorld() bool {
	return b.world != nil
}

func (b *Body) circle() core.Circle {
	return core.Circle{Center: b.Pos, Radius: b.Radius}
}

func (b *Body) box() core.Box {
	return core.Box{Center: b.Pos, HalfW: b.HalfW, HalfH: b.HalfH}
}

func (b *Body) overlaps(o *Body) bool {
	switch {
	case b.Shape == ShapeCircle && o.Shape == ShapeCircle:
		return b.circle().OverlapsCircle(o.circle())
	case b.Shape == ShapeCircle:
		return b.circle().Overlaps(o.box())
	case o.Shape == ShapeCircle:
		return o.circle().Overlaps(b.box())
	default:
		return b.box().Overlaps(o.box())
	}
}

// Contact is a begin-contact event between two bodies.
type Contact struct {
	A, B *Body
}

type pairKey struct {
	lo, hi BodyID
}

func makePair(a, b BodyID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// World is a minimal 2D scene: gravity, velocity integration and
// begin-contact detection. Bodies pass through each other; overlap only
// produces contact events.
type World struct {
	Gravity float64 // Downward acceleration in units/s²

	nextID   BodyID
	bodies   map[BodyID]*Body
	touching map[pairKey]bool
}

// NewWorld creates an empty world.
func NewWorld(gravity float64) *World {
	return &World{
		Gravity:  gravity,
		bodies:   make(map[BodyID]*Body),
		touching: make(map[pairKey]bool),
	}
}

// Add inserts a body and assigns it an id.
func (w *World) Add(b *Body) *Body {
	w.nextID++
	b.ID = w.nextID
	b.world = w
	w.bodies[b.ID] = b
	return b
}

// Remove takes a body out of the world. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b.world != w {
		return
	}
	delete(w.bodies, b.ID)
	for p := range w.touching {
		if p.lo == b.ID || p.hi == b.ID {
			delete(w.touching, p)
		}
	}
	b.world = nil
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns all bodies ordered by id.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Integrate applies gravity and moves every body by dt seconds.
func (w *World) Integrate(dt float64) {
	for _, b := range w.bodies {
		if b.Gravity {
			b.Vel.Y -= w.Gravity * dt
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}

// Contacts returns pairs that started overlapping since the last call.
// A pair that stays in contact is reported once; it is reported again
// only after it separates and touches anew.
func (w *World) Contacts() []Contact {
	bodies := w.Bodies()
	var out []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Category&b.ContactMask == 0 && b.Category&a.ContactMask == 0 {
				continue
			}
			key := makePair(a.ID, b.ID)
			if !a.overlaps(b) {
				delete(w.touching, key)
				continue
			}
			if w.touching[key] {
				continue
			}
			w.touching[key] = true
			out = append(out, Contact{A: a, B: b})
		}
	}
	return out
}
