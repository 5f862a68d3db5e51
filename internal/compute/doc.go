// Package compute provides backends for the pairwise gravity pass.
//
// Two implementations exist:
//
//   - CPU: serial for small body counts, worker-parallel above a threshold
//   - OpenGL: compute-shader evaluation, opt-in once a GL context exists
//
// The CPU backend is always available and is the default:
//
//	ax, ay := compute.GetBackend().PairAccel(positions, mass, g, cutoff2, minDist2)
package compute
