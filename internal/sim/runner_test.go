package sim

import (
	"context"
	"testing"

	"github.com/san-kum/clothlab/internal/cloth"
)

func testCloth(t *testing.T) *cloth.Simulation {
	t.Helper()
	s, err := cloth.New(cloth.Config{
		Width: 6, Height: 4, Spacing: 1.0, Mass: 1.0, Gravity: 9.81,
		TearDistance: 1.6, MouseDistance: 1.5, MouseInfluence: 0.6,
		Iterations: 5,
	})
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}
	return s
}

func TestNewRunnerInvalidDt(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"zero dt", 0},
		{"negative dt", -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(testCloth(t), tt.dt); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAdvanceAccumulator(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if steps := r.Advance(0.005, cloth.Pointer{}); steps != 0 {
		t.Errorf("half a step should run nothing, got %d steps", steps)
	}
	if steps := r.Advance(0.005, cloth.Pointer{}); steps != 1 {
		t.Errorf("accumulated full step should run once, got %d steps", steps)
	}
	if steps := r.Advance(0.035, cloth.Pointer{}); steps != 3 {
		t.Errorf("expected 3 steps from 35ms, got %d", steps)
	}
	if steps := r.Advance(-1, cloth.Pointer{}); steps != 0 {
		t.Errorf("negative elapsed should run nothing, got %d steps", steps)
	}
}

func TestAdvanceClampsStalls(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	steps := r.Advance(10.0, cloth.Pointer{})
	if steps == 0 {
		t.Fatal("expected at least one step")
	}
	if steps > 26 {
		t.Errorf("stalled frame ran %d steps, clamp allows at most ~25", steps)
	}
}

type countObserver struct {
	count int
}

func (c *countObserver) OnStep(_ *cloth.Simulation, _ float64) { c.count++ }

type intactMetric struct {
	last float64
}

func (m *intactMetric) Name() string { return "intact" }
func (m *intactMetric) Observe(c *cloth.Simulation, _ float64) {
	m.last = float64(c.Intact())
}
func (m *intactMetric) Value() float64 { return m.last }
func (m *intactMetric) Reset()         { m.last = 0 }

func TestRunHeadless(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	obs := &countObserver{}
	r.AddObserver(obs)
	r.AddMetric(&intactMetric{})

	result, err := r.RunHeadless(context.Background(), 1.0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Times) != 100 {
		t.Errorf("expected 100 samples, got %d", len(result.Times))
	}
	if len(result.Series["intact"]) != 100 {
		t.Errorf("expected 100 intact samples, got %d", len(result.Series["intact"]))
	}
	if obs.count != 100 {
		t.Errorf("expected 100 observer calls, got %d", obs.count)
	}
	if _, ok := result.Final["intact"]; !ok {
		t.Error("final metric value missing")
	}
}

func TestRunHeadlessInvalidDuration(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if _, err := r.RunHeadless(context.Background(), 0); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestRunHeadlessCanceled(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.RunHeadless(ctx, 1.0)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps after cancel, got %d", result.StepsTaken)
	}
}

func TestResetZeroesClock(t *testing.T) {
	r, err := NewRunner(testCloth(t), 0.01)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	r.Advance(0.1, cloth.Pointer{})
	if r.Time() == 0 {
		t.Fatal("expected time to advance")
	}

	if err := r.Reset(r.Cloth().Config()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if r.Time() != 0 {
		t.Errorf("expected time 0 after reset, got %f", r.Time())
	}
}
