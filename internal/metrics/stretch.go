package metrics

import "github.com/san-kum/clothlab/internal/cloth"

// MaxStretch tracks the worst strain among enabled constraints as a
// ratio of current length to rest length. 1.0 means fully relaxed;
// values approaching TearDistance/Spacing mean the cloth is about to rip.
type MaxStretch struct {
	last float64
}

func NewMaxStretch() *MaxStretch { return &MaxStretch{last: 1} }

func (m *MaxStretch) Name() string { return "max_stretch" }

func (m *MaxStretch) Observe(c *cloth.Simulation, _ float64) {
	worst := 1.0
	for i := 0; i < c.NumConstraints(); i++ {
		cn := c.ConstraintAt(i)
		if !cn.Enabled || cn.Rest == 0 {
			continue
		}
		a, b, _ := c.Segment(i)
		ratio := a.DistanceTo(b) / cn.Rest
		if ratio > worst {
			worst = ratio
		}
	}
	m.last = worst
}

func (m *MaxStretch) Value() float64 { return m.last }

func (m *MaxStretch) Reset() { m.last = 1 }
