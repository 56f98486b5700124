package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothlab/internal/cloth"
)

// MeshToSVG renders the current cloth state as an SVG document: one line
// per enabled constraint, a dot per pinned particle. Torn constraints
// are simply absent, matching how live renderers hide them.
func MeshToSVG(s *cloth.Simulation, width, height int) string {
	minX, minY, maxX, maxY := bounds(s)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	toPx := func(p cloth.Vec3) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		// World Y points up, SVG Y points down.
		y := (maxY - p.Y) / rangeY * float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ff88" stroke-width="1">
`, width, height, width, height))

	for i := 0; i < s.NumConstraints(); i++ {
		a, b, enabled := s.Segment(i)
		if !enabled {
			continue
		}
		x1, y1 := toPx(a)
		x2, y2 := toPx(b)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}

	sb.WriteString("</g>\n<g fill=\"#ff4444\">\n")
	for i := 0; i < s.NumParticles(); i++ {
		p := s.ParticleAt(i)
		if !p.Pinned {
			continue
		}
		cx, cy := toPx(p.Pos)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2"/>
`, cx, cy))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func bounds(s *cloth.Simulation) (minX, minY, maxX, maxY float64) {
	if s.NumParticles() == 0 {
		return 0, 0, 1, 1
	}
	first := s.ParticleAt(0).Pos
	minX, maxX = first.X, first.X
	minY, maxY = first.Y, first.Y
	for i := 1; i < s.NumParticles(); i++ {
		p := s.ParticleAt(i).Pos
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
