package compute

// Backend computes the pairwise gravitational pass over a packed (x,y)
// position buffer. All bodies share one mass. Pairs separated by more than
// the cutoff distance contribute nothing; separations below the floor are
// clamped to the floor before the inverse-square evaluation.
type Backend interface {
	Name() string
	Available() bool
	PairAccel(positions []float64, mass, g, cutoff2, minDist2 float64) (ax, ay []float64)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
