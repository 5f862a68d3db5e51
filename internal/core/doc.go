// Package core implements the gravity sandbox simulation engine.
//
// A fixed [CentralMass] sits at the origin; mobile bodies spawned by user
// gestures orbit it under simplified Newtonian gravity. Per tick the
// [Simulation] computes central plus pairwise accelerations (the pairwise
// pass skips pairs beyond a cutoff distance and floors near-zero
// separations), integrates with semi-implicit Euler at a fixed timestep,
// and samples trail histories on a wall-clock cadence.
//
// The engine is single-threaded and caller-driven:
//
//	sim := core.New(core.DefaultTuning(), seed)
//	sim.AddBody(x, y, vx, vy)     // input collaborator, outside the tick
//	sim.Step()                    // once per frame
//	sim.RemoveOutOfRange(mx, my)  // cull escapees and star collisions
//	for _, b := range sim.Bodies() { ... }
//
// There is no recoverable-error taxonomy: inputs are trusted, capacity
// overflow is a defined FIFO eviction, and the minimum-distance floor keeps
// all arithmetic finite.
package core
