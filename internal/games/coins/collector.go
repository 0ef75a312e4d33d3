package coins

import "github.com/vovakirdan/stepcoins/internal/core"

// Collector drives the bag from a tilt signal.
type Collector struct {
	Body  *Body
	gain  float64
	width float64
}

// NewCollector creates the bag body centered horizontally at height y.
func NewCollector(width, y, bagW, bagH, gain float64) *Collector {
	return &Collector{
		Body: &Body{
			Category:    CategoryBag,
			ContactMask: CategoryCoin,
			Shape:       ShapeBox,
			Pos:         core.Vec{X: width / 2, Y: y},
			HalfW:       bagW / 2,
			HalfH:       bagH / 2,
		},
		gain:  gain,
		width: width,
	}
}

// ApplyTilt sets the horizontal velocity to tilt × gain. Tilt is clamped to
// [-1, 1]; the bag never moves vertically.
func (c *Collector) ApplyTilt(tilt float64) {
	tilt = core.ClampF(tilt, -1, 1)
	c.Body.Vel = core.Vec{X: tilt * c.gain, Y: 0}
}

// Clamp keeps the bag's x inside [0, width]. Call after integration.
func (c *Collector) Clamp() {
	c.Body.Pos.X = core.ClampF(c.Body.Pos.X, 0, c.width)
}

// X returns the bag's horizontal position.
func (c *Collector) X() float64 {
	return c.Body.Pos.X
}
