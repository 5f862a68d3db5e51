package core

import (
	"math"
	"math/rand"
)

type Vec2 struct {
	X, Y float64
}

// Body is one mobile point mass. Mass is shared by all bodies (see Tuning),
// so it is not stored per instance. The trail holds exactly TrailLength
// historical positions, most recent first.
type Body struct {
	ID     uint64
	X, Y   float64
	VX, VY float64
	Color  [3]float64

	trail []Vec2
}

func newBody(id uint64, x, y, vx, vy float64, trailLength int, rng *rand.Rand) *Body {
	b := &Body{
		ID:    id,
		X:     x,
		Y:     y,
		VX:    vx,
		VY:    vy,
		Color: randomColor(rng),
		trail: make([]Vec2, trailLength),
	}
	for i := range b.trail {
		b.trail[i] = Vec2{X: x, Y: y}
	}
	return b
}

// randomColor biases one channel into a high range and the other two into
// a mid-low range, then normalizes the triple to unit length.
func randomColor(rng *rand.Rand) [3]float64 {
	var c [3]float64
	hot := rng.Intn(3)
	for i := range c {
		if i == hot {
			c[i] = 0.7 + 0.3*rng.Float64()
		} else {
			c[i] = 0.1 + 0.4*rng.Float64()
		}
	}
	norm := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
	for i := range c {
		c[i] /= norm
	}
	return c
}

// Integrate advances the body one semi-implicit Euler step: velocity first,
// then position with the already-updated velocity.
func (b *Body) Integrate(ax, ay, dt float64) {
	b.VX += ax * dt
	b.VY += ay * dt
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// SampleTrail shifts the history one slot toward the tail, dropping the
// oldest sample, and records the current position at the head.
func (b *Body) SampleTrail() {
	copy(b.trail[1:], b.trail[:len(b.trail)-1])
	b.trail[0] = Vec2{X: b.X, Y: b.Y}
}

func (b *Body) OutOfBounds(maxX, maxY float64) bool {
	return math.Abs(b.X) > maxX || math.Abs(b.Y) > maxY
}

func (b *Body) CollidedWithCentral(radius float64) bool {
	return b.X*b.X+b.Y*b.Y < radius*radius
}

// Trail returns a copy of the history, most recent first.
func (b *Body) Trail() []Vec2 {
	out := make([]Vec2, len(b.trail))
	copy(out, b.trail)
	return out
}

func (b *Body) Speed() float64 {
	return math.Sqrt(b.VX*b.VX + b.VY*b.VY)
}
