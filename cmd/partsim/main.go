package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/partsim/partsim/internal/metrics"
	"github.com/partsim/partsim/internal/particles"
	"github.com/partsim/partsim/internal/scenario"
	"github.com/partsim/partsim/internal/storage"
)

var (
	preset        string
	dt            float64
	steps         int
	every         int
	dbPath        string
	checkpointOut string
	// plot options
	particleIdx int
	series      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "particle dynamics simulator",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a simulation from a scenario file or preset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario")
	runCmd.Flags().Float64Var(&dt, "dt", scenario.DefaultDt, "timestep")
	runCmd.Flags().IntVar(&steps, "steps", scenario.DefaultSteps, "number of steps")
	runCmd.Flags().IntVar(&every, "every", scenario.DefaultSnapshotEvery, "snapshot interval in steps")
	runCmd.Flags().StringVar(&dbPath, "db", "partsim.db", "snapshot database path (empty to disable)")
	runCmd.Flags().StringVar(&checkpointOut, "checkpoint", "", "write a resumable checkpoint here at the end")

	resumeCmd := &cobra.Command{
		Use:   "resume [checkpoint.json]",
		Short: "continue a run from a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  resumeCheckpoint,
	}
	resumeCmd.Flags().Float64Var(&dt, "dt", scenario.DefaultDt, "timestep")
	resumeCmd.Flags().IntVar(&steps, "steps", scenario.DefaultSteps, "number of steps")
	resumeCmd.Flags().IntVar(&every, "every", scenario.DefaultSnapshotEvery, "snapshot interval in steps")
	resumeCmd.Flags().StringVar(&dbPath, "db", "partsim.db", "snapshot database path (empty to disable)")
	resumeCmd.Flags().StringVar(&checkpointOut, "checkpoint", "", "write a resumable checkpoint here at the end")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run.db]",
		Short: "plot a particle's trajectory from a snapshot database",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index")
	plotCmd.Flags().StringVar(&series, "series", "radius", "series to plot: radius, speed, x, y, z")

	rootCmd.AddCommand(runCmd, resumeCmd, presetsCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	var sc *scenario.Scenario
	switch {
	case preset != "":
		var ok bool
		sc, ok = scenario.Get(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, scenario.Names())
		}
	case len(args) == 1:
		var err error
		sc, err = scenario.Load(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("a scenario file or --preset is required")
	}

	// CLI flags override scenario values.
	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		sc.Steps = steps
	}
	if cmd.Flags().Changed("every") {
		sc.SnapshotEvery = every
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	sys, err := sc.Build()
	if err != nil {
		return err
	}

	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Printf("running %s: %d particles, dt=%g, %d steps\n", name, sys.Len(), sc.Dt, sc.Steps)

	return simulate(sys, sc.Dt, sc.Steps, sc.SnapshotEvery)
}

func resumeCheckpoint(cmd *cobra.Command, args []string) error {
	if dt <= 0 || steps <= 0 || every <= 0 {
		return fmt.Errorf("dt, steps and every must be positive")
	}

	doc, err := storage.LoadCheckpoint(args[0])
	if err != nil {
		return err
	}
	sys, err := particles.FromState(doc)
	if err != nil {
		return err
	}

	fmt.Printf("resuming at t=%g: %d particles, dt=%g, %d steps\n", sys.Time(), sys.Len(), dt, steps)

	return simulate(sys, dt, steps, every)
}

func simulate(sys *particles.System, dt float64, steps, every int) error {
	var store *storage.SnapshotStore
	if dbPath != "" {
		var err error
		store, err = storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	mets := []metrics.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMomentumDrift(),
		metrics.NewMaxRadius(0, 0, 0),
	}

	ctx := context.Background()
	record := func() error {
		snap := sys.Snapshot()
		for _, m := range mets {
			m.Observe(snap)
		}
		if store != nil {
			return store.Write(ctx, snap)
		}
		return nil
	}

	// Save the initial state before stepping.
	if err := record(); err != nil {
		return err
	}

	progressEvery := steps / 10
	if progressEvery == 0 {
		progressEvery = 1
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := sys.Advance(dt); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if (i+1)%every == 0 {
			if err := record(); err != nil {
				return err
			}
		}
		if (i+1)%progressEvery == 0 {
			fmt.Printf("  step %d/%d (t=%.6f)\n", i+1, steps, sys.Time())
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v, final t=%.6f\n", elapsed, sys.Time())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range mets {
		fmt.Fprintf(w, "%s\t%.6g\n", m.Name(), m.Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if checkpointOut != "" {
		if err := storage.SaveCheckpoint(checkpointOut, sys.State()); err != nil {
			return err
		}
		fmt.Printf("checkpoint written to %s\n", checkpointOut)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tDT\tSTEPS")
	for _, name := range scenario.Names() {
		sc, _ := scenario.Get(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\n", name, len(sc.Particles), sc.Dt, sc.Steps)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	times, parts, err := store.ParticleSeries(context.Background(), particleIdx)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no snapshots for particle %d", particleIdx)
	}

	data := make([]float64, len(parts))
	for i, p := range parts {
		switch series {
		case "radius":
			data[i] = math.Sqrt(p.Position.X*p.Position.X + p.Position.Y*p.Position.Y + p.Position.Z*p.Position.Z)
		case "speed":
			data[i] = math.Sqrt(p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y + p.Velocity.Z*p.Velocity.Z)
		case "x":
			data[i] = p.Position.X
		case "y":
			data[i] = p.Position.Y
		case "z":
			data[i] = p.Position.Z
		default:
			return fmt.Errorf("unknown series: %s", series)
		}
	}

	fmt.Printf("particle %d, %d samples, t=[%.6f, %.6f]\n\n", particleIdx, len(parts), times[0], times[len(times)-1])

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs snapshot", series)),
	)
	fmt.Println(graph)

	return nil
}
