// Package core provides fundamental types and utilities shared by the game
// engine and the terminal platform. It has no terminal dependencies so that
// game logic stays pure and testable.
package core

import "math"

// Vec is a 2D vector in world units. Y grows upward.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Box is an axis-aligned rectangle described by its center and half extents.
type Box struct {
	Center Vec
	HalfW  float64
	HalfH  float64
}

// Circle is a disc in world units.
type Circle struct {
	Center Vec
	Radius float64
}

// Overlaps reports whether the circle and the box share any area.
// Touching edges do not count as overlap.
func (c Circle) Overlaps(b Box) bool {
	// Closest point of the box to the circle center
	nx := ClampF(c.Center.X, b.Center.X-b.HalfW, b.Center.X+b.HalfW)
	ny := ClampF(c.Center.Y, b.Center.Y-b.HalfH, b.Center.Y+b.HalfH)
	dx := c.Center.X - nx
	dy := c.Center.Y - ny
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// OverlapsCircle reports whether two circles share any area.
func (c Circle) OverlapsCircle(o Circle) bool {
	dx := c.Center.X - o.Center.X
	dy := c.Center.Y - o.Center.Y
	r := c.Radius + o.Radius
	return dx*dx+dy*dy < r*r
}

// Overlaps reports whether two boxes share any area.
func (b Box) Overlaps(o Box) bool {
	return math.Abs(b.Center.X-o.Center.X) < b.HalfW+o.HalfW &&
		math.Abs(b.Center.Y-o.Center.Y) < b.HalfH+o.HalfH
}

// Rect is an integer rectangle in screen cells, used for HUD boxes.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts an int to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
