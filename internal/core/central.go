package core

// CentralMass is the fixed gravity source at the origin. It is immutable
// for the process lifetime; any flicker or ray animation belongs to the
// renderer, not here.
type CentralMass struct {
	mass            float64
	collisionRadius float64
}

func NewCentralMass(mass, collisionRadius float64) CentralMass {
	return CentralMass{mass: mass, collisionRadius: collisionRadius}
}

func (c CentralMass) Mass() float64            { return c.mass }
func (c CentralMass) CollisionRadius() float64 { return c.collisionRadius }
