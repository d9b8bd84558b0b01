package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/engine"
	"github.com/san-kum/orbsim/internal/gravity"
	"github.com/san-kum/orbsim/internal/maneuver"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	scenario   string
	integrator string
	dt         float64
	timeScale  float64
	massScale  float64
	velScale   float64
	hMax       float64
	softening  float64
	duration   float64
	trailLen   int
	central    string
	retrograde bool

	burnBody   string
	burnDeltaV float64
	apBody     string
	apTarget   string
	apThrust   float64
	apEnabled  bool

	frameRate int
	plotBody  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbsim",
		Short: "interactive n-body gravitational simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a headless simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "display frames per second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body id to plot (default: first non-central)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and states as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "time both integrators on a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addSimFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset for the scenario")
	cmd.Flags().StringVar(&integrator, "integrator", "leapfrog", "integrator (leapfrog|rk4)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "days per frame before scaling")
	cmd.Flags().Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "playback multiplier")
	cmd.Flags().Float64Var(&massScale, "mass-scale", 1.0, "gravitational source mass multiplier")
	cmd.Flags().Float64Var(&velScale, "vel-scale", 1.0, "drift-only velocity scale")
	cmd.Flags().Float64Var(&hMax, "h-max", 0, "substep ceiling in days (0 = default)")
	cmd.Flags().Float64Var(&softening, "softening", 0, "squared softening length in AU^2 (0 = default)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated days to cover")
	cmd.Flags().IntVar(&trailLen, "trail-len", 0, "trail length override for all bodies (0 = scenario defaults)")
	cmd.Flags().StringVar(&central, "central", config.DefaultCentral, "central body id for seeding")
	cmd.Flags().BoolVar(&retrograde, "retrograde", false, "seed retrograde orbits")
	cmd.Flags().StringVar(&burnBody, "burn-body", "", "body id for delta-v burn")
	cmd.Flags().Float64Var(&burnDeltaV, "burn-dv", 0, "burn delta-v in AU/day")
	cmd.Flags().StringVar(&apBody, "ap-body", "", "autopilot body id")
	cmd.Flags().StringVar(&apTarget, "ap-target", "", "autopilot target body id")
	cmd.Flags().Float64Var(&apThrust, "ap-thrust", 1e-6, "autopilot thrust in AU/day^2")
	cmd.Flags().BoolVar(&apEnabled, "ap-enabled", false, "engage autopilot at start")
}

// buildConfig resolves the effective config with flag > file > preset >
// default precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg.Scenario = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scenario %q", preset, cfg.Scenario)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			loaded.Scenario = args[0]
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("integrator", func() { cfg.Integrator = integrator })
	set("dt", func() { cfg.Dt = dt })
	set("time-scale", func() { cfg.TimeScale = timeScale })
	set("mass-scale", func() { cfg.MassScale = massScale })
	set("vel-scale", func() { cfg.VelScale = velScale })
	set("h-max", func() { cfg.HMax = hMax })
	set("softening", func() { cfg.Softening = softening })
	set("time", func() { cfg.Duration = duration })
	set("trail-len", func() { cfg.TrailLen = trailLen })
	set("central", func() { cfg.Central = central })
	set("retrograde", func() { cfg.Retrograde = retrograde })
	set("burn-body", func() { cfg.Burn.Body = burnBody })
	set("burn-dv", func() { cfg.Burn.DeltaV = burnDeltaV })
	set("ap-body", func() { cfg.Autopilot.Body = apBody })
	set("ap-target", func() { cfg.Autopilot.Target = apTarget })
	set("ap-thrust", func() { cfg.Autopilot.Thrust = apThrust })
	set("ap-enabled", func() { cfg.Autopilot.Enabled = apEnabled })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	eng, err := engine.New(cfg.Scenario, cfg.Central, cfg.Retrograde)
	if err != nil {
		return nil, err
	}
	if cfg.TrailLen > 0 {
		eng.OverrideTrailLens(cfg.TrailLen)
	}
	if cfg.Autopilot.Body != "" && cfg.Autopilot.Target != "" {
		ap := &maneuver.Autopilot{
			BodyID:   cfg.Autopilot.Body,
			TargetID: cfg.Autopilot.Target,
			Thrust:   cfg.Autopilot.Thrust,
		}
		eng.SetAutopilot(ap, cfg.Autopilot.Enabled)
	}
	if cfg.Burn.Body != "" && cfg.Burn.DeltaV != 0 {
		eng.QueueBurn(cfg.Burn.Body, cfg.Burn.DeltaV)
	}
	return eng, nil
}

func frameConfig(cfg *config.Config) engine.FrameConfig {
	return engine.FrameConfig{
		Running:   true,
		Method:    cfg.Method(),
		DT:        cfg.Dt,
		TimeScale: cfg.TimeScale,
		MassScale: cfg.MassScale,
		VelScale:  cfg.VelScale,
		HMax:      cfg.HMax,
		Softening: cfg.Softening,
	}
}

func frameCount(cfg *config.Config) int {
	span := cfg.Dt * cfg.TimeScale
	return int(math.Ceil(cfg.Duration / span))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	gopt := gravity.Options{MassScale: cfg.MassScale, Softening: cfg.Softening}
	start := time.Now()
	result, err := eng.Run(context.Background(), frameCount(cfg), frameConfig(cfg),
		metrics.NewEnergyDrift(gopt), metrics.NewMomentumDrift())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Scenario, cfg.Integrator, cfg.Dt, cfg.TimeScale, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d frames, %.1f simulated days in %v\n", runID, result.Steps, eng.Time(), elapsed.Round(time.Millisecond))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.3e\n", name, value)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	model := viz.NewModel(eng, frameConfig(cfg), cfg.Burn.Body, cfg.Burn.DeltaV, frameRate)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tINTEGRATOR\tDT\tSCALE\tDAYS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.1f\t%.1f\t%s\n",
			r.ID, r.Scenario, r.Integrator, r.Dt, r.TimeScale, r.Duration,
			r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := store.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s has no states", args[0])
	}

	target := plotBody
	if target == "" && len(meta.Bodies) > 1 {
		target = meta.Bodies[1]
	}
	col := -1
	for i, id := range meta.Bodies {
		if id == target {
			col = i * 3
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("body %q not in run %s", target, args[0])
	}

	radii := make([]float64, 0, len(states))
	for _, row := range states {
		if col+2 >= len(row) {
			continue
		}
		x, y, z := row[col], row[col+1], row[col+2]
		radii = append(radii, math.Sqrt(x*x+y*y+z*z))
	}

	fmt.Println(asciigraph.Plot(radii,
		asciigraph.Height(14),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s: distance from origin (AU)", target)),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := store.LoadStates(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Times  []float64            `json:"times"`
		States [][]float64          `json:"states"`
	}{meta, times, states})
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFRAMES\tELAPSED\tENERGY DRIFT")
	for _, name := range []string{"leapfrog", "rk4"} {
		cfg.Integrator = name
		eng, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		drift := metrics.NewEnergyDrift(gravity.Options{MassScale: cfg.MassScale, Softening: cfg.Softening})

		start := time.Now()
		result, err := eng.Run(context.Background(), frameCount(cfg), frameConfig(cfg), drift)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.3e\n", name, result.Steps,
			time.Since(start).Round(time.Microsecond), drift.Value())
	}
	return w.Flush()
}
