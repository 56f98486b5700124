package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumSine(t *testing.T) {
	// 4 Hz sine sampled at 128 Hz for 2 seconds.
	dt := 1.0 / 128
	data := make([]float64, 256)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	// Bin k maps to k/(n*dt) Hz; 4 Hz over 2 s lands in bin 8.
	if maxIdx != 8 {
		t.Errorf("expected peak in bin 8, got %d", maxIdx)
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 1.0 / 128
	data := make([]float64, 256)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*4*float64(i)*dt)
	}

	freq := DominantFrequency(data, dt)
	if math.Abs(freq-4.0) > 0.5 {
		t.Errorf("expected ~4 Hz, got %f", freq)
	}
}

func TestPowerSpectrumEmpty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("expected nil for empty input, got %v", ps)
	}
}

func TestPowerSpectrumPadsOddLengths(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 7)
	}
	ps := PowerSpectrum(data)
	// Padded to 128, half retained.
	if len(ps) != 64 {
		t.Errorf("expected 64 bins, got %d", len(ps))
	}
}
