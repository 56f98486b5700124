package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/clothlab/internal/analysis"
	"github.com/san-kum/clothlab/internal/cloth"
	"github.com/san-kum/clothlab/internal/config"
	"github.com/san-kum/clothlab/internal/export"
	"github.com/san-kum/clothlab/internal/metrics"
	"github.com/san-kum/clothlab/internal/sim"
	"github.com/san-kum/clothlab/internal/storage"
	"github.com/san-kum/clothlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	duration   float64
	width      int
	height     int
	spacing    float64
	mass       float64
	gravity    float64
	tear       float64
	iterations int

	frameRate  int
	seriesName string
	svgOut     string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothlab",
		Short: "interactive cloth simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, name, frameRate)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothlab", "data directory")
	addMeshFlags(rootCmd)
	rootCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive cloth with mouse drag and cut",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, name, frameRate)
		},
	}
	addMeshFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the metric series",
		RunE:  runSimulation,
	}
	addMeshFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "energy", "series to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "simulate briefly and write an SVG snapshot of the mesh",
		RunE:  exportSVG,
	}
	addMeshFlags(exportSVGCmd)
	exportSVGCmd.Flags().Float64Var(&duration, "time", 3.0, "seconds to simulate before the snapshot")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "cloth.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "svg-width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "svg-height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s %dx%d gravity=%.1f tear=%.2f iterations=%d\n",
					name, cfg.Width, cfg.Height, cfg.Gravity, cfg.TearDistance, cfg.Iterations)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark mesh sizes and solver iteration counts",
		RunE:  benchMesh,
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addMeshFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width in particles")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height in particles")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "grid spacing")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity magnitude")
	cmd.Flags().Float64Var(&tear, "tear", config.DefaultTearDistance, "tear distance")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "solver iterations")
}

// resolveConfig layers preset, config file, and explicit flags, the
// flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = configFile
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("spacing") {
		cfg.Spacing = spacing
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("tear") {
		cfg.TearDistance = tear
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newRunner(cfg *config.Config) (*sim.Runner, error) {
	c, err := cloth.New(cfg.Mesh())
	if err != nil {
		return nil, err
	}
	runner, err := sim.NewRunner(c, cfg.Dt)
	if err != nil {
		return nil, err
	}
	runner.AddMetric(metrics.NewEnergy(cfg.Dt))
	runner.AddMetric(metrics.NewIntact())
	runner.AddMetric(metrics.NewMaxStretch())
	return runner, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, err := newRunner(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %dx%d cloth for %.1fs...\n", cfg.Width, cfg.Height, duration)
	start := time.Now()

	result, err := runner.RunHeadless(context.Background(), duration)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:       name,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Spacing:      cfg.Spacing,
		Gravity:      cfg.Gravity,
		TearDistance: cfg.TearDistance,
		Iterations:   cfg.Iterations,
		Dt:           cfg.Dt,
		Duration:     duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Final))
	for n := range result.Final {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Final[n])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tDURATION\tDT\tITER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Duration,
			run.Dt,
			run.Iterations,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n\n", meta.Width, meta.Height)

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	data, ok := series[seriesName]
	if !ok || len(data) == 0 {
		return fmt.Errorf("no %q series in run %s", seriesName, runID)
	}

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, seriesName)

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(plotData) > len(ps)/4 && len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(series[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, series)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner, err := newRunner(cfg)
	if err != nil {
		return err
	}

	if _, err := runner.RunHeadless(context.Background(), duration); err != nil {
		return err
	}

	svg := export.MeshToSVG(runner.Cloth(), svgWidth, svgHeight)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s after %.1fs of simulation\n", svgOut, duration)
	return nil
}

func benchMesh(cmd *cobra.Command, args []string) error {
	sizes := []struct{ w, h int }{{12, 8}, {40, 25}, {80, 50}}
	iterCounts := []int{1, 5, 15}
	const steps = 600

	fmt.Println("benchmarking cloth stepping")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tITER\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, iters := range iterCounts {
			cfg := config.DefaultConfig()
			cfg.Width = size.w
			cfg.Height = size.h
			cfg.Iterations = iters

			c, err := cloth.New(cfg.Mesh())
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < steps; i++ {
				c.Step(cfg.Dt, cloth.Pointer{})
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%d\t%v\t%.0f\n",
				size.w, size.h, size.w*size.h, iters, steps, elapsed,
				float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
