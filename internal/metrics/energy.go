package metrics

import "github.com/san-kum/clothlab/internal/cloth"

// Energy tracks the total mechanical energy of the mesh: kinetic from
// per-step displacement plus gravitational potential. Pinned particles
// carry no kinetic term and a constant potential, so they are skipped.
type Energy struct {
	dt   float64
	last float64
}

// NewEnergy needs the fixed timestep to recover velocities from the
// Verlet position pair.
func NewEnergy(dt float64) *Energy {
	return &Energy{dt: dt}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(c *cloth.Simulation, _ float64) {
	total := 0.0
	for i := 0; i < c.NumParticles(); i++ {
		p := c.ParticleAt(i)
		if p.Pinned {
			continue
		}
		v := p.Pos.Sub(p.Prev).Scale(1 / e.dt)
		speed2 := v.X*v.X + v.Y*v.Y + v.Z*v.Z
		total += 0.5*p.Mass*speed2 + p.Mass*p.Gravity*p.Pos.Y
	}
	e.last = total
}

func (e *Energy) Value() float64 { return e.last }

func (e *Energy) Reset() { e.last = 0 }
