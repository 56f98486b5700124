package cloth

// satisfy relaxes all enabled constraints toward their rest length over
// the configured number of passes. Gauss-Seidel style: each correction
// is visible to the constraints processed after it, so store order
// shapes the convergence path.
func (s *Simulation) satisfy() {
	for pass := 0; pass < s.cfg.Iterations; pass++ {
		for i := range s.constraints {
			c := &s.constraints[i]
			if !c.Enabled {
				continue
			}
			pa := &s.particles[c.A]
			pb := &s.particles[c.B]

			delta := pa.Pos.Sub(pb.Pos)
			dist := delta.Length()
			if dist > c.Max {
				// Torn. The correction below still applies this pass;
				// the disable takes effect from the next one.
				c.Enabled = false
			}
			if dist == 0 {
				// Coincident endpoints leave no correction direction.
				continue
			}

			diff := (c.Rest - dist) / dist
			corr := delta.Scale(diff * 0.5)
			if !pa.Pinned {
				pa.Pos = pa.Pos.Add(corr)
			}
			if !pb.Pinned {
				pb.Pos = pb.Pos.Sub(corr)
			}
		}
	}
}
