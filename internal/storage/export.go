package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID       string               `json:"id"`
	Dt       float64              `json:"dt"`
	Duration float64              `json:"duration"`
	Steps    int                  `json:"steps"`
	Times    []float64            `json:"times"`
	Series   map[string][]float64 `json:"series"`
	Metrics  map[string]float64   `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, series map[string][]float64) error {
	data := ExportData{
		ID:       meta.ID,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    len(times),
		Times:    times,
		Series:   series,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
