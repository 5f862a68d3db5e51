package compute

import (
	"math"
	"runtime"
	"sync"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) PairAccel(positions []float64, mass, g, cutoff2, minDist2 float64) ([]float64, []float64) {
	n := len(positions) / 2
	ax := make([]float64, n)
	ay := make([]float64, n)

	if n < 48 {
		c.pairSerial(positions, mass, g, cutoff2, minDist2, ax, ay)
		return ax, ay
	}

	c.pairParallel(positions, mass, g, cutoff2, minDist2, ax, ay)
	return ax, ay
}

func (c *CPUBackend) pairSerial(pos []float64, mass, g, cutoff2, minDist2 float64, ax, ay []float64) {
	n := len(pos) / 2

	for i := 0; i < n; i++ {
		xi, yi := pos[i*2], pos[i*2+1]

		for j := i + 1; j < n; j++ {
			rx := pos[j*2] - xi
			ry := pos[j*2+1] - yi
			r2 := rx*rx + ry*ry

			if r2 > cutoff2 {
				continue
			}
			if r2 == 0 {
				// coincident pair, no defined direction
				continue
			}

			rEff2 := r2
			if rEff2 < minDist2 {
				rEff2 = minDist2
			}

			// magnitude uses the floored distance, direction the real one
			f := g * mass / (rEff2 * math.Sqrt(r2))

			ax[i] += f * rx
			ay[i] += f * ry
			ax[j] -= f * rx
			ay[j] -= f * ry
		}
	}
}

func (c *CPUBackend) pairParallel(pos []float64, mass, g, cutoff2, minDist2 float64, ax, ay []float64) {
	n := len(pos) / 2

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			for i := start; i < end; i++ {
				xi, yi := pos[i*2], pos[i*2+1]

				for j := 0; j < n; j++ {
					if i == j {
						continue
					}

					rx := pos[j*2] - xi
					ry := pos[j*2+1] - yi
					r2 := rx*rx + ry*ry

					if r2 > cutoff2 || r2 == 0 {
						continue
					}

					rEff2 := r2
					if rEff2 < minDist2 {
						rEff2 = minDist2
					}

					f := g * mass / (rEff2 * math.Sqrt(r2))

					ax[i] += f * rx
					ay[i] += f * ry
				}
			}
		}(w)
	}

	wg.Wait()
}
