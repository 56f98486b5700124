package cloth

import "math"

// applyPointer translates pointer state into a drag or a cut. While the
// primary button is up the stored previous position tracks the pointer,
// so the first drag tick never sees a stale delta.
func (s *Simulation) applyPointer(ptr Pointer) {
	if ptr.Secondary {
		s.cut(ptr.Pos)
	} else if ptr.Primary {
		s.drag(ptr.Pos)
	}
	if !ptr.Primary {
		s.prevPointer = ptr.Pos
	}
}

// drag nudges the nearest unpinned particle along the pointer's motion
// vector, scaled by MouseInfluence. The nudge is a direct position write,
// bypassing integration for immediate response. The stored previous
// pointer position only advances when a drag actually lands.
func (s *Simulation) drag(pos Vec3) {
	move := pos.Sub(s.prevPointer)
	if move.Length() == 0 {
		return
	}
	i, dist := s.nearest(pos)
	if i < 0 || s.particles[i].Pinned {
		return
	}
	if dist >= s.cfg.MouseDistance {
		return
	}
	p := &s.particles[i]
	p.Pos = p.Pos.Add(move.Normalize().Scale(s.cfg.MouseInfluence))
	s.prevPointer = pos
}

// cut disables every constraint touching the particle nearest the
// pointer, detaching it from its neighbors for good.
func (s *Simulation) cut(pos Vec3) {
	i, dist := s.nearest(pos)
	if i < 0 || dist >= s.cfg.MouseDistance {
		return
	}
	for ci := range s.constraints {
		c := &s.constraints[ci]
		if c.A == i || c.B == i {
			c.Enabled = false
		}
	}
}

// nearest scans all particles for the one closest to pos, ties going to
// the lowest index. Linear; fine for the particle counts this targets.
func (s *Simulation) nearest(pos Vec3) (int, float64) {
	best := -1
	bestDist := math.MaxFloat64
	for i := range s.particles {
		d := s.particles[i].Pos.DistanceTo(pos)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}
