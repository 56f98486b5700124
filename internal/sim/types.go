package sim

import "github.com/san-kum/clothlab/internal/cloth"

// Metric aggregates a scalar over the course of a run.
type Metric interface {
	Name() string
	Observe(c *cloth.Simulation, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every fixed step.
type Observer interface {
	OnStep(c *cloth.Simulation, t float64)
}

// Result holds a headless run: one sample per step for each metric.
type Result struct {
	Times      []float64
	Series     map[string][]float64
	Final      map[string]float64
	StepsTaken int
}
