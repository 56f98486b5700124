package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/clothlab/internal/cloth"
)

// maxFrameClamp caps how much wall-clock time one Advance call may
// consume. A stalled frame otherwise queues an unbounded burst of steps.
const maxFrameClamp = 0.25

// Runner drives a cloth simulation with a fixed timestep. Wall-clock
// time is fed through an accumulator so the kernel always sees the same
// dt regardless of frame jitter.
type Runner struct {
	cloth     *cloth.Simulation
	dt        float64
	accum     float64
	t         float64
	metrics   []Metric
	observers []Observer
}

func NewRunner(c *cloth.Simulation, dt float64) (*Runner, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	return &Runner{cloth: c, dt: dt}, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Cloth() *cloth.Simulation { return r.cloth }
func (r *Runner) Dt() float64              { return r.dt }
func (r *Runner) Time() float64            { return r.t }

// Reset rebuilds the mesh and zeroes the clock and accumulator. Must not
// race a concurrent Advance; the runner is single-goroutine like the
// kernel it wraps.
func (r *Runner) Reset(cfg cloth.Config) error {
	if err := r.cloth.Reset(cfg); err != nil {
		return err
	}
	r.t = 0
	r.accum = 0
	for _, m := range r.metrics {
		m.Reset()
	}
	return nil
}

// Advance consumes elapsed wall-clock seconds in fixed dt steps, passing
// the same pointer state to each. Returns the number of steps taken.
func (r *Runner) Advance(elapsed float64, ptr cloth.Pointer) int {
	if elapsed < 0 {
		return 0
	}
	r.accum += elapsed
	if r.accum > maxFrameClamp {
		r.accum = maxFrameClamp
	}
	steps := 0
	for r.accum >= r.dt {
		r.step(ptr)
		r.accum -= r.dt
		steps++
	}
	return steps
}

func (r *Runner) step(ptr cloth.Pointer) {
	r.cloth.Step(r.dt, ptr)
	r.t += r.dt
	for _, m := range r.metrics {
		m.Observe(r.cloth, r.t)
	}
	for _, obs := range r.observers {
		obs.OnStep(r.cloth, r.t)
	}
}

// RunHeadless steps the simulation for duration seconds with no pointer
// input, recording every metric each step.
func (r *Runner) RunHeadless(ctx context.Context, duration float64) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	steps := int(duration / r.dt)
	result := &Result{
		Times:  make([]float64, 0, steps),
		Series: make(map[string][]float64, len(r.metrics)),
		Final:  make(map[string]float64, len(r.metrics)),
	}
	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, steps)
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.step(cloth.Pointer{})
		result.Times = append(result.Times, r.t)
		for _, m := range r.metrics {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		result.StepsTaken++
	}

	for _, m := range r.metrics {
		result.Final[m.Name()] = m.Value()
	}
	return result, nil
}
