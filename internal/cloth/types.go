package cloth

import "fmt"

// Particle is a point mass in the mesh. Particles live by value in a
// single contiguous slice owned by the Simulation; constraints refer to
// them by index, never by pointer.
type Particle struct {
	Pos  Vec3
	Prev Vec3

	// Per-tick transients.
	Vel   Vec3
	Acc   Vec3
	Force Vec3

	Mass    float64
	Gravity float64
	Pinned  bool
}

// Constraint links two particles by index and holds them near Rest
// distance. Once Enabled goes false (tear or cut) the constraint is
// permanently inert until the mesh is rebuilt.
type Constraint struct {
	A, B    int
	Rest    float64
	Max     float64
	Enabled bool
}

// Pointer carries per-tick pointer state in world space. Primary drags
// the nearest particle, Secondary cuts it free.
type Pointer struct {
	Pos       Vec3
	Primary   bool
	Secondary bool
}

// Config describes a cloth mesh. Width and Height are grid dimensions in
// particles; AnchorY is the world-space height of the pinned top row.
type Config struct {
	Width          int
	Height         int
	Spacing        float64
	Mass           float64
	Gravity        float64
	TearDistance   float64
	MouseDistance  float64
	MouseInfluence float64
	Iterations     int
	AnchorY        float64
}

// Validate rejects degenerate mesh parameters before construction.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("%w, got %dx%d", ErrGridTooSmall, c.Width, c.Height)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("%w, got %f", ErrBadSpacing, c.Spacing)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w, got %f", ErrBadMass, c.Mass)
	}
	if c.Gravity < 0 {
		return fmt.Errorf("%w, got %f", ErrBadGravity, c.Gravity)
	}
	if c.TearDistance <= 0 {
		return fmt.Errorf("%w, got %f", ErrBadTearDistance, c.TearDistance)
	}
	if c.MouseDistance <= 0 {
		return fmt.Errorf("%w, got %f", ErrBadPointerRange, c.MouseDistance)
	}
	if c.MouseInfluence < 0 {
		return fmt.Errorf("%w, got %f", ErrBadInfluence, c.MouseInfluence)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w, got %d", ErrBadIterations, c.Iterations)
	}
	return nil
}
