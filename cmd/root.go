package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/disk-sim/sim"
	"github.com/inference-sim/disk-sim/sim/trace"
	"github.com/inference-sim/disk-sim/sim/workload"
)

var (
	// Shared by run, compare and defaults
	configPath string // defaults.yaml location
	logLevel   string // Log verbosity level

	// Config overrides, applied only when the flag is set
	totalBuffers  int   // Total buffer cache capacity
	rightBuffers  int   // Right (hot) segment capacity
	quantumTime   int64 // Timer quantum in µs
	maxGenLength  int   // N-step-LOOK generation bound
	tracksPerDisk int64 // Disk tracks
	sectorsPerTrk int64 // Sectors per track
	horizon       int64 // Stop after this many µs (0 = unlimited)

	// Workload selection
	workloadPath  string  // YAML workload file
	randomCount   int     // Number of random processes (0 = demo workload)
	seed          int64   // Seed for random workload generation
	writeFraction float64 // Share of random processes that write
	hotFraction   float64 // Share of random processes aimed at the hot set
	hotSectors    int     // Hot set size

	// run only
	strategyName string // Disk scheduling strategy
	traceLevel   string // Trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "disk-sim",
	Short: "Discrete-event simulator for a buffer cache over a scheduled disk",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the disk simulation under one scheduling strategy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		defaults := loadEffectiveDefaults(cmd.Flags())
		name := defaults.Strategy
		if cmd.Flags().Changed("strategy") {
			name = strategyName
		}
		strategy, err := sim.ParseStrategy(name)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid: none, events", traceLevel)
		}

		entries := loadWorkload(cmd.Flags(), defaults.Sim)
		logrus.Infof("Starting %s simulation with %d processes, %d buffers (%d right), %dx%d disk",
			strategy, len(entries), defaults.Sim.Cache.TotalBufferCount, defaults.Sim.Cache.RightBufferCount,
			defaults.Sim.Disk.TracksPerDisk, defaults.Sim.Disk.SectorsPerTrack)

		report, err := simulate(defaults.Sim, strategy, entries, newTraceSink(trace.TraceLevel(traceLevel), os.Stdout))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		report.Print(os.Stdout)

		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs the same workload under every strategy
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same workload under FIFO, LOOK and NLOOK and compare",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		defaults := loadEffectiveDefaults(cmd.Flags())
		entries := loadWorkload(cmd.Flags(), defaults.Sim)

		reports, err := compareStrategies(defaults.Sim, entries)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		printComparison(os.Stdout, reports)
	},
}

// defaultsCmd prints the effective configuration
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		defaults := loadEffectiveDefaults(cmd.Flags())
		out, err := marshalDefaults(defaults)
		if err != nil {
			logrus.Fatalf("Failed to render defaults: %v", err)
		}
		_, _ = os.Stdout.Write(out)
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadEffectiveDefaults reads the defaults file, applies flag overrides and
// validates the result. Exits on error.
func loadEffectiveDefaults(flags *pflag.FlagSet) Defaults {
	defaults, err := loadDefaultsConfig(configPath, flags.Changed("config"))
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	applyOverrides(flags, &defaults.Sim)
	if err := defaults.Sim.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return defaults
}

// applyOverrides copies explicitly set flags into cfg. Unset flags never
// overwrite values from the defaults file.
func applyOverrides(flags *pflag.FlagSet, cfg *sim.Config) {
	if flags.Changed("total-buffers") {
		cfg.Cache.TotalBufferCount = totalBuffers
	}
	if flags.Changed("right-buffers") {
		cfg.Cache.RightBufferCount = rightBuffers
	}
	if flags.Changed("quantum") {
		cfg.Timing.QuantumTime = quantumTime
	}
	if flags.Changed("max-generation-length") {
		cfg.MaxGenerationQueueLength = maxGenLength
	}
	if flags.Changed("tracks") {
		cfg.Disk.TracksPerDisk = tracksPerDisk
	}
	if flags.Changed("sectors-per-track") {
		cfg.Disk.SectorsPerTrack = sectorsPerTrk
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
}

// loadWorkload picks the workload source: a YAML file, a random workload,
// or the built-in demonstration. Exits on error.
func loadWorkload(flags *pflag.FlagSet, cfg sim.Config) []workload.Entry {
	entries, err := buildWorkload(flags, cfg)
	if err != nil {
		logrus.Fatalf("Failed to build workload: %v", err)
	}
	return entries
}

func buildWorkload(flags *pflag.FlagSet, cfg sim.Config) ([]workload.Entry, error) {
	switch {
	case workloadPath != "":
		spec, err := workload.LoadWorkloadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		if spec.Random != nil && flags.Changed("seed") {
			spec.Random.Seed = seed
		}
		return workload.Generate(spec, cfg.NumSectors())
	case randomCount > 0:
		spec := &workload.WorkloadSpec{Random: &workload.RandomSpec{
			Count:         randomCount,
			Seed:          seed,
			WriteFraction: writeFraction,
			HotFraction:   hotFraction,
			HotSectors:    hotSectors,
		}}
		return workload.Generate(spec, cfg.NumSectors())
	default:
		return workload.Demo(), nil
	}
}

// simulate runs entries once. Each call builds fresh processes, so the same
// entries can be replayed under several strategies.
func simulate(cfg sim.Config, strategy sim.Strategy, entries []workload.Entry, sink trace.Sink) (*sim.Report, error) {
	s, err := sim.NewSimulator(cfg, strategy, workload.ToProcesses(entries), sink)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

func compareStrategies(cfg sim.Config, entries []workload.Entry) ([]*sim.Report, error) {
	reports := make([]*sim.Report, 0, len(sim.ValidStrategies))
	for _, strategy := range sim.ValidStrategies {
		report, err := simulate(cfg, strategy, entries, nil)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", strategy, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func printComparison(w io.Writer, reports []*sim.Report) {
	fmt.Fprintln(w, "=== Strategy Comparison ===")
	fmt.Fprintf(w, "%-8s %10s %8s %6s %8s %10s %8s\n",
		"strategy", "total_us", "seek", "ops", "hit%", "wait_mean", "wait_p99")
	for _, r := range reports {
		s := r.Summary
		fmt.Fprintf(w, "%-8s %10d %8d %6d %7.1f%% %10.2f %8.0f\n",
			r.Strategy, r.TotalTime, r.SeekDistance, s.Counts[trace.OperationCompleted],
			100*s.HitRatio, s.WaitMean, s.WaitP99)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerConfigFlags adds the flags shared by every subcommand.
// Override defaults mirror sim.DefaultConfig so --help shows the built-in values.
func registerConfigFlags(cmd *cobra.Command) {
	def := sim.DefaultConfig()
	cmd.Flags().StringVar(&configPath, "config", defaultsFilePath, "Path to defaults YAML (timing, cache and disk constants)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().IntVar(&totalBuffers, "total-buffers", def.Cache.TotalBufferCount, "Total buffer cache capacity")
	cmd.Flags().IntVar(&rightBuffers, "right-buffers", def.Cache.RightBufferCount, "Right (hot) segment capacity, less than total")
	cmd.Flags().Int64Var(&quantumTime, "quantum", def.Timing.QuantumTime, "Timer quantum (in µs)")
	cmd.Flags().IntVar(&maxGenLength, "max-generation-length", def.MaxGenerationQueueLength, "Maximum N-step-LOOK generation length")
	cmd.Flags().Int64Var(&tracksPerDisk, "tracks", def.Disk.TracksPerDisk, "Tracks per disk")
	cmd.Flags().Int64Var(&sectorsPerTrk, "sectors-per-track", def.Disk.SectorsPerTrack, "Sectors per track")
	cmd.Flags().Int64Var(&horizon, "horizon", def.Horizon, "Simulation horizon (in µs, 0 = unlimited)")
}

// registerWorkloadFlags adds the workload selection flags.
func registerWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workloadPath, "workload", "", "Path to YAML workload file (default: built-in demo)")
	cmd.Flags().IntVar(&randomCount, "random", 0, "Generate this many random processes instead of the demo")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random workload generation")
	cmd.Flags().Float64Var(&writeFraction, "write-fraction", 0.3, "Share of random processes that write")
	cmd.Flags().Float64Var(&hotFraction, "hot-fraction", 0.5, "Share of random processes aimed at the hot set")
	cmd.Flags().IntVar(&hotSectors, "hot-sectors", 8, "Number of hot sectors for random workloads")
}

// init sets up CLI flags and subcommands
func init() {
	registerConfigFlags(runCmd)
	registerWorkloadFlags(runCmd)
	runCmd.Flags().StringVar(&strategyName, "strategy", string(sim.StrategyLOOK), "Disk scheduling strategy (FIFO, LOOK, NLOOK)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace verbosity (none, events)")

	registerConfigFlags(compareCmd)
	registerWorkloadFlags(compareCmd)

	registerConfigFlags(defaultsCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(defaultsCmd)
}
