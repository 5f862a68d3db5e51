package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/core"
	"github.com/san-kum/orbitbox/internal/gui"
	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/storage"
	"github.com/san-kum/orbitbox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	duration   float64
	spawnRate  float64
	frameRate  int
	noAudio    bool
	useGPU     bool
	// Plot column selection
	plotColumn string
)

// main is the entry point for the orbitbox CLI; it registers commands and flags,
// launches the GUI sandbox when no subcommand is provided, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitbox",
		Short: "interactive gravity sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg, useGPU)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitbox", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	rootCmd.PersistentFlags().Float64Var(&spawnRate, "rate", config.DefaultSpawnRate, "auto spawns per second")
	rootCmd.Flags().BoolVar(&useGPU, "gpu", false, "offload pairwise gravity to a compute shader")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable sound output")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless simulation run, recorded to the data directory",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the sandbox in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded timeline column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "bodies", "timeline column: bodies, kinetic, collisions, escapes, evictions")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run timeline to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportJSONStdout(args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping at several population sizes",
		RunE:  benchStep,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: preset, then config
// file, then CLI flags, later sources overriding earlier ones.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("rate") {
		cfg.SpawnRate = spawnRate
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if noAudio {
		cfg.Audio = false
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := core.New(cfg.Tuning(), cfg.Seed)
	spawner := core.NewAutoSpawner(cfg.SpawnRate, cfg.Seed+1)
	stdMetrics := metrics.Standard()

	tun := sim.Tuning()
	steps := int(cfg.Duration / tun.Dt)
	sampleEvery := int(0.1 / tun.Dt)
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	maxX := 160.0 + tun.BoundsMargin
	maxY := 90.0 + tun.BoundsMargin

	fmt.Printf("running sandbox for %.1fs (%d steps)...\n", cfg.Duration, steps)
	start := time.Now()

	timeline := make([]storage.Sample, 0, steps/sampleEvery+1)
	for i := 0; i < steps; i++ {
		t := float64(i) * tun.Dt
		spawner.Tick(sim, tun.Dt)
		sim.Step()
		sim.RemoveOutOfRange(maxX, maxY)

		for _, m := range stdMetrics {
			m.Observe(sim, t)
		}
		if i%sampleEvery == 0 {
			timeline = append(timeline, storage.Sample{
				T:          t,
				Bodies:     sim.Count(),
				Kinetic:    sim.KineticEnergy(),
				Collisions: sim.Collisions(),
				Escapes:    sim.Escapes(),
				Evictions:  sim.Evictions(),
			})
		}
	}
	elapsed := time.Since(start)

	results := make(map[string]float64, len(stdMetrics))
	for _, m := range stdMetrics {
		results[m.Name()] = m.Value()
	}

	presetName := preset
	if presetName == "" {
		presetName = "default"
	}
	runID, err := st.Save(presetName, cfg.Seed, tun.Dt, cfg.Duration, tun.MaxBodies, results, timeline)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final bodies: %d  collisions: %d  escapes: %d  evictions: %d\n",
		sim.Count(), sim.Collisions(), sim.Escapes(), sim.Evictions())
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tMAX_BODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.MaxBodies,
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

	timeline, err := st.LoadTimeline(runID)
	if err != nil {
		return err
	}
	if len(timeline) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data := make([]float64, len(timeline))
	for i, s := range timeline {
		switch plotColumn {
		case "bodies":
			data[i] = float64(s.Bodies)
		case "kinetic":
			data[i] = s.Kinetic
		case "collisions":
			data[i] = float64(s.Collisions)
		case "escapes":
			data[i] = float64(s.Escapes)
		case "evictions":
			data[i] = float64(s.Evictions)
		default:
			return fmt.Errorf("unknown column: %s", plotColumn)
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(timeline))

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs time", plotColumn)),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	timeline, err := st.LoadTimeline(args[0])
	if err != nil {
		return err
	}
	if len(timeline) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "bodies", "kinetic_energy", "collisions", "escapes", "evictions"}); err != nil {
		return err
	}
	for _, s := range timeline {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.Itoa(s.Bodies),
			strconv.FormatFloat(s.Kinetic, 'f', 6, 64),
			strconv.Itoa(s.Collisions),
			strconv.Itoa(s.Escapes),
			strconv.Itoa(s.Evictions),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	populations := []int{10, 50, 100, 250, 500}
	const steps = 2000

	fmt.Println("benchmarking pairwise gravity stepping")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range populations {
		tun := core.DefaultTuning()
		tun.MaxBodies = n
		sim := core.New(tun, 42)

		spawner := core.NewAutoSpawner(float64(n), 42)
		spawner.Tick(sim, 1.0)

		start := time.Now()
		for i := 0; i < steps; i++ {
			sim.Step()
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			sim.Count(), steps, elapsed, float64(steps)/elapsed.Seconds())
	}

	return w.Flush()
}
