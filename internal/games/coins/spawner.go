package coins

import (
	"math/rand"

	"github.com/vovakirdan/stepcoins/internal/core"
)

// Coin is a falling coin. It is alive from spawn until it is collected or
// times out.
type Coin struct {
	Body      *Body
	SpawnedAt float64
}

// ID returns the coin's body id.
func (c *Coin) ID() BodyID {
	return c.Body.ID
}

// Alive reports whether the coin is still in the scene.
func (c *Coin) Alive() bool {
	return c.Body.InWorld()
}

// Spawner creates coins at random horizontal positions along the top edge.
type Spawner struct {
	rng    *rand.Rand
	width  float64
	height float64
	radius float64
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(seed int64, width, height, radius float64) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed)),
		width:  width,
		height: height,
		radius: radius,
	}
}

// Spawn creates a coin at a uniformly random x in [0, width] and y = height.
// The coin falls under gravity and only reports contacts with the bag.
func (s *Spawner) Spawn(now float64) *Coin {
	return &Coin{
		Body: &Body{
			Category:    CategoryCoin,
			ContactMask: CategoryBag,
			Shape:       ShapeCircle,
			Pos:         core.Vec{X: s.rng.Float64() * s.width, Y: s.height},
			Radius:      s.radius,
			Gravity:     true,
		},
		SpawnedAt: now,
	}
}
