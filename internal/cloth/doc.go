// Package cloth implements a particle-constraint cloth simulation:
// a rectangular grid of point masses connected by distance constraints,
// advanced with position-based Verlet integration.
//
// The package defines the core types of the kernel:
//
//   - [Particle]: point mass with current and previous position
//   - [Constraint]: distance constraint between two particle indices
//   - [Simulation]: owns both stores and runs the per-tick pipeline
//   - [Pointer]: world-space pointer state supplied by the caller
//
// # Tick Pipeline
//
// Each call to [Simulation.Step] runs integration, pointer interaction,
// and constraint relaxation in that order:
//
//	s, _ := cloth.New(cfg)
//	for {
//	    s.Step(dt, pointer)
//	}
//
// Constraints are never removed, only disabled. A torn constraint stays
// torn until [Simulation.Reset] rebuilds the mesh, and its index remains
// valid so renderers can keep a parallel primitive collection in lockstep.
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. The whole pipeline is
// single-threaded and synchronous; drive it from one goroutine.
package cloth
