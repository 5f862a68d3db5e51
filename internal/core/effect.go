package core

import "time"

// CollisionEffect is the two-state machine behind the central-collision
// flash. A collision while one is active overwrites it; there is no queue.
type CollisionEffect struct {
	Active bool
	X, Y   float64
	Start  time.Time
}

func (e *CollisionEffect) trigger(x, y float64, now time.Time) {
	e.Active = true
	e.X = x
	e.Y = y
	e.Start = now
}

// expire deactivates the effect once its duration has elapsed. Checked once
// per Step.
func (e *CollisionEffect) expire(now time.Time, duration time.Duration) {
	if e.Active && now.Sub(e.Start) > duration {
		e.Active = false
	}
}
