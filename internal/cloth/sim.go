package cloth

// Simulation owns the particle and constraint stores and advances them in
// fixed steps. All mutation happens inside Step and Reset.
type Simulation struct {
	cfg         Config
	particles   []Particle
	constraints []Constraint
	prevPointer Vec3
}

// New builds a simulation from cfg, validating it first.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{}
	s.rebuild(cfg)
	return s, nil
}

// Reset discards all particle and constraint state and rebuilds the mesh
// from cfg. Torn constraints come back; nothing from the previous
// generation survives.
func (s *Simulation) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.rebuild(cfg)
	return nil
}

// rebuild lays out a Width x Height grid hung from row 0. Each particle
// gets a constraint to its left neighbor and to the particle above it,
// both at rest length Spacing.
func (s *Simulation) rebuild(cfg Config) {
	w, h := cfg.Width, cfg.Height
	s.cfg = cfg
	s.particles = make([]Particle, 0, w*h)
	s.constraints = make([]Constraint, 0, 2*w*h)
	s.prevPointer = Vec3{}

	startX := -float64(w-1)/2*cfg.Spacing + cfg.Spacing/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := Vec3{
				X: startX + float64(x)*cfg.Spacing,
				Y: cfg.AnchorY - float64(y)*cfg.Spacing,
			}
			s.particles = append(s.particles, Particle{
				Pos:     pos,
				Prev:    pos,
				Mass:    cfg.Mass,
				Gravity: cfg.Gravity,
				Pinned:  y == 0,
			})
			if x > 0 {
				s.constraints = append(s.constraints, Constraint{
					A: s.index(x-1, y), B: s.index(x, y),
					Rest: cfg.Spacing, Max: cfg.TearDistance, Enabled: true,
				})
			}
			if y > 0 {
				s.constraints = append(s.constraints, Constraint{
					A: s.index(x, y-1), B: s.index(x, y),
					Rest: cfg.Spacing, Max: cfg.TearDistance, Enabled: true,
				})
			}
		}
	}
}

// index maps grid coordinates to the flat particle index: row 0 is the
// pinned top edge.
func (s *Simulation) index(x, y int) int {
	return x + y*s.cfg.Width
}

// Step advances the simulation one fixed tick: Verlet integration, then
// pointer interaction, then constraint relaxation. dt must match the
// caller's fixed timestep; Verlet stability depends on it being constant.
func (s *Simulation) Step(dt float64, ptr Pointer) {
	s.integrate(dt)
	s.applyPointer(ptr)
	s.satisfy()
}

// Config returns the configuration the current mesh was built from.
func (s *Simulation) Config() Config { return s.cfg }

func (s *Simulation) NumParticles() int { return len(s.particles) }

func (s *Simulation) ParticleAt(i int) Particle { return s.particles[i] }

func (s *Simulation) NumConstraints() int { return len(s.constraints) }

func (s *Simulation) ConstraintAt(i int) Constraint { return s.constraints[i] }

// Segment exposes constraint i to renderers: endpoint positions plus
// whether the segment should be drawn. Indices are stable across the
// life of a mesh generation.
func (s *Simulation) Segment(i int) (a, b Vec3, enabled bool) {
	c := s.constraints[i]
	return s.particles[c.A].Pos, s.particles[c.B].Pos, c.Enabled
}

// Intact counts constraints that have not torn.
func (s *Simulation) Intact() int {
	n := 0
	for i := range s.constraints {
		if s.constraints[i].Enabled {
			n++
		}
	}
	return n
}
