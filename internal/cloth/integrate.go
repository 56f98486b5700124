package cloth

// integrate advances every unpinned particle one Stoermer-Verlet step.
// Gravity enters as a constant downward force scaled by mass; any force
// accumulated during the previous tick is consumed and cleared here.
func (s *Simulation) integrate(dt float64) {
	dt2 := dt * dt
	for i := range s.particles {
		p := &s.particles[i]
		if p.Pinned {
			continue
		}
		p.Force.Y -= p.Gravity * p.Mass
		p.Acc = p.Force.Scale(1 / p.Mass)
		// Diagnostic only; the position update below does not use it.
		p.Vel = p.Pos.Sub(p.Prev).Scale(dt)
		next := p.Pos.Scale(2).Sub(p.Prev).Add(p.Acc.Scale(dt2))
		p.Prev = p.Pos
		p.Pos = next
		p.Force = Vec3{}
	}
}
