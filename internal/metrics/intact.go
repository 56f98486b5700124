package metrics

import "github.com/san-kum/clothlab/internal/cloth"

// Intact reports the fraction of constraints still enabled, 1.0 for an
// untorn mesh.
type Intact struct {
	last float64
}

func NewIntact() *Intact { return &Intact{last: 1} }

func (m *Intact) Name() string { return "intact" }

func (m *Intact) Observe(c *cloth.Simulation, _ float64) {
	total := c.NumConstraints()
	if total == 0 {
		m.last = 1
		return
	}
	m.last = float64(c.Intact()) / float64(total)
}

func (m *Intact) Value() float64 { return m.last }

func (m *Intact) Reset() { m.last = 1 }
